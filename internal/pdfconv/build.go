package pdfconv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/filetype"
	"github.com/ytget/multitool/internal/platform"
)

// ErrNoImages is returned when an image list is empty
var ErrNoImages = errors.New("no images selected")

// SheetImportDetails fits each image onto an A4 page
const SheetImportDetails = "formsize:A4, position:c, scalefactor:1 rel"

func init() {
	// Keep pdfcpu from creating its config directory under the user's home
	api.DisableConfigDir()
}

// ImagesToPDF writes one page per image, in order, sized to the image itself.
// An existing file at outPath is replaced.
func ImagesToPDF(ctx context.Context, images []string, outPath string) error {
	return importImages(ctx, images, outPath, pdfcpu.DefaultImportConfig())
}

// SheetsToPDF writes one A4 page per image, in order, each image fit to its page.
func SheetsToPDF(ctx context.Context, images []string, outPath string) error {
	imp, err := pdfcpu.ParseImportDetails(SheetImportDetails, types.POINTS)
	if err != nil {
		return fmt.Errorf("invalid import details: %w", err)
	}
	return importImages(ctx, images, outPath, imp)
}

func importImages(ctx context.Context, images []string, outPath string, imp *pdfcpu.Import) error {
	if len(images) == 0 {
		return ErrNoImages
	}
	for _, img := range images {
		if err := filetype.RequireImage(img); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(outPath)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	// pdfcpu appends to an existing file, the action always starts fresh
	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace %s: %w", outPath, err)
	}

	start := time.Now()
	conf := model.NewDefaultConfiguration()
	if err := api.ImportImagesFile(images, outPath, imp, conf); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("failed to build PDF: %w", err)
	}

	log.Info().
		Int("images", len(images)).
		Str("output", outPath).
		Dur("duration", time.Since(start)).
		Msg("images converted to PDF")
	return nil
}

// PageCount returns the number of pages of an unencrypted PDF
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("pdf page count failed: %w", err)
	}
	return n, nil
}
