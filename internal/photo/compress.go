package photo

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/filetype"
	"github.com/ytget/multitool/internal/platform"
)

// Compression defaults
const (
	DefaultQuality = 30
	MinQuality     = 1
	MaxQuality     = 100
)

// CompressResult describes a finished compression
type CompressResult struct {
	Output     string
	InputSize  int64
	OutputSize int64
}

// Ratio returns output size relative to input size
func (r CompressResult) Ratio() float64 {
	if r.InputSize == 0 {
		return 0
	}
	return float64(r.OutputSize) / float64(r.InputSize)
}

// Compress re-encodes the image at inPath as a JPEG of the given quality
func Compress(ctx context.Context, inPath, outPath string, quality int) (CompressResult, error) {
	res := CompressResult{Output: outPath}
	if err := filetype.RequireImage(inPath); err != nil {
		return res, err
	}
	quality = clampQuality(quality)

	info, err := os.Stat(inPath)
	if err != nil {
		return res, fmt.Errorf("failed to stat input: %w", err)
	}
	res.InputSize = info.Size()

	start := time.Now()
	img, err := imaging.Open(inPath, imaging.AutoOrientation(true))
	if err != nil {
		return res, fmt.Errorf("failed to decode image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(outPath)); err != nil {
		return res, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := SaveJPEG(Flatten(img), outPath, quality); err != nil {
		return res, err
	}

	if info, err := os.Stat(outPath); err == nil {
		res.OutputSize = info.Size()
	}

	log.Info().
		Str("input", inPath).
		Str("output", outPath).
		Int("quality", quality).
		Int64("input_size", res.InputSize).
		Int64("output_size", res.OutputSize).
		Dur("duration", time.Since(start)).
		Msg("image compressed")
	return res, nil
}

// Flatten draws img onto an opaque white background, JPEG has no alpha
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// SaveJPEG encodes img to path as JPEG, removing a partial file on failure
func SaveJPEG(img image.Image, path string, quality int) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(clampQuality(quality))); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write JPEG: %w", err)
	}
	return nil
}

func clampQuality(q int) int {
	switch {
	case q == 0:
		return DefaultQuality
	case q < MinQuality:
		return MinQuality
	case q > MaxQuality:
		return MaxQuality
	}
	return q
}
