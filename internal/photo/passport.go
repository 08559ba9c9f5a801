package photo

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/filetype"
	"github.com/ytget/multitool/internal/model"
	"github.com/ytget/multitool/internal/pdfconv"
	"github.com/ytget/multitool/internal/platform"
)

// Sheet layout in pixels
const (
	SheetMargin  = 100
	PhotoSpacing = 50
	SheetQuality = 95
)

// ErrInvalidCount is returned when the photo count is outside the allowed range
var ErrInvalidCount = fmt.Errorf("photo count must be between %d and %d", model.MinPhotoCount, model.MaxPhotoCount)

// ErrUnsupportedOutput is returned for output paths that are neither JPEG nor PDF
var ErrUnsupportedOutput = errors.New("output must be a .jpg, .jpeg or .pdf file")

// PassportRequest describes one passport sheet job
type PassportRequest struct {
	Input    string
	Output   string
	Crop     model.CropRect
	Count    int
	Size     model.PhotoSize
	Progress pdfconv.ProgressFunc
}

// Crop cuts rect out of img; an empty rect, or one that misses the image, keeps it whole
func Crop(img image.Image, rect model.CropRect) image.Image {
	if rect.Empty() {
		return img
	}
	r := rect.Clamp(img.Bounds())
	if r.Empty() {
		return img
	}
	return imaging.Crop(img, r.Rectangle())
}

// Layout returns the top-left corner of every tile, grouped by sheet. Tiles
// fill rows left to right; a tile that would cross the bottom edge starts a
// new sheet.
func Layout(count int, size model.PhotoSize) [][]image.Point {
	if count <= 0 || size.Width <= 0 || size.Height <= 0 {
		return nil
	}
	// A tile larger than the printable area can never fit
	if SheetMargin+size.Width > model.SheetWidth || SheetMargin+size.Height > model.SheetHeight {
		return nil
	}

	var sheets [][]image.Point
	var current []image.Point
	x, y := SheetMargin, SheetMargin

	for i := 0; i < count; i++ {
		if y+size.Height > model.SheetHeight {
			sheets = append(sheets, current)
			current = nil
			x, y = SheetMargin, SheetMargin
		}
		current = append(current, image.Pt(x, y))

		x += size.Width + PhotoSpacing
		if x+size.Width > model.SheetWidth {
			x = SheetMargin
			y += size.Height + PhotoSpacing
		}
	}
	return append(sheets, current)
}

// SheetCapacity returns how many tiles of size fit on one sheet
func SheetCapacity(size model.PhotoSize) int {
	sheets := Layout(model.MaxPhotoCount*4, size)
	if len(sheets) == 0 {
		return 0
	}
	return len(sheets[0])
}

// ComposeSheets resizes photo to size and pastes count copies onto white A4 canvases
func ComposeSheets(photo image.Image, count int, size model.PhotoSize) []*image.NRGBA {
	tile := imaging.Resize(Flatten(photo), size.Width, size.Height, imaging.Lanczos)

	layout := Layout(count, size)
	sheets := make([]*image.NRGBA, 0, len(layout))
	for _, points := range layout {
		canvas := imaging.New(model.SheetWidth, model.SheetHeight, color.White)
		for _, p := range points {
			canvas = imaging.Paste(canvas, tile, p)
		}
		sheets = append(sheets, canvas)
	}
	return sheets
}

// MakePassportSheets runs the whole passport action and returns the written files
func MakePassportSheets(ctx context.Context, req PassportRequest) ([]string, error) {
	if req.Count < model.MinPhotoCount || req.Count > model.MaxPhotoCount {
		return nil, ErrInvalidCount
	}
	if req.Size.Width <= 0 || req.Size.Height <= 0 {
		return nil, fmt.Errorf("invalid photo size %q", req.Size.Name)
	}
	asPDF := platform.HasExtension(req.Output, filetype.PDFExtensions...)
	if !asPDF && !platform.HasExtension(req.Output, filetype.JPEGExtensions...) {
		return nil, ErrUnsupportedOutput
	}
	if err := filetype.RequireImage(req.Input); err != nil {
		return nil, err
	}

	start := time.Now()
	src, err := imaging.Open(req.Input, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	sheets := ComposeSheets(Crop(src, req.Crop), req.Count, req.Size)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(req.Output)); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	if asPDF {
		written, err = writePDF(ctx, sheets, req)
	} else {
		written, err = writeJPEGs(ctx, sheets, req)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("input", req.Input).
		Str("output", req.Output).
		Str("size", req.Size.Name).
		Int("count", req.Count).
		Int("sheets", len(sheets)).
		Dur("duration", time.Since(start)).
		Msg("passport sheets created")
	return written, nil
}

func writeJPEGs(ctx context.Context, sheets []*image.NRGBA, req PassportRequest) ([]string, error) {
	written := make([]string, 0, len(sheets))
	for i, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			pdfconv.RemoveAll(written)
			return nil, err
		}
		path := platform.SiblingPath(req.Output, i+1)
		if err := SaveJPEG(sheet, path, SheetQuality); err != nil {
			pdfconv.RemoveAll(written)
			return nil, err
		}
		written = append(written, path)
		if req.Progress != nil {
			req.Progress(i+1, len(sheets))
		}
	}
	return written, nil
}

func writePDF(ctx context.Context, sheets []*image.NRGBA, req PassportRequest) ([]string, error) {
	tmpDir, err := os.MkdirTemp("", "multitool_passport_")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := strings.ReplaceAll(uuid.New().String(), "-", "")
	pages := make([]string, 0, len(sheets))
	for i, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(tmpDir, fmt.Sprintf("%s_%03d.jpg", prefix, i))
		if err := SaveJPEG(sheet, path, SheetQuality); err != nil {
			return nil, err
		}
		pages = append(pages, path)
		if req.Progress != nil {
			req.Progress(i+1, len(sheets)+1)
		}
	}

	if err := pdfconv.SheetsToPDF(ctx, pages, req.Output); err != nil {
		return nil, err
	}
	if req.Progress != nil {
		req.Progress(len(sheets)+1, len(sheets)+1)
	}
	return []string{req.Output}, nil
}
