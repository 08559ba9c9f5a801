package pdfconv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/filetype"
	"github.com/ytget/multitool/internal/platform"
)

// Rendering defaults
const (
	DefaultDPI     = 200
	PageNameFormat = "%s_page_%d.png"
)

// ErrPasswordProtected is returned when a PDF cannot be opened without a password
var ErrPasswordProtected = errors.New("document is password protected")

// ProgressFunc receives the number of finished units out of total
type ProgressFunc func(done, total int)

// PageFileName returns the file name of a rendered page; index is 0-based
func PageFileName(pdfPath string, index int) string {
	return fmt.Sprintf(PageNameFormat, platform.Stem(pdfPath), index)
}

// RenderPages renders every page of pdfPath into outDir as PNG and returns the
// written files in page order. Pages already written stay on disk when ctx is
// cancelled midway.
func RenderPages(ctx context.Context, pdfPath, outDir string, dpi int, progress ProgressFunc) ([]string, error) {
	if err := filetype.RequirePDF(pdfPath); err != nil {
		return nil, err
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if err := platform.CreateDirectoryIfNotExists(outDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		if errors.Is(err, fitz.ErrNeedsPassword) {
			return nil, ErrPasswordProtected
		}
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	start := time.Now()
	log.Info().Str("input", pdfPath).Int("pages", total).Int("dpi", dpi).Msg("rendering PDF pages")

	written := make([]string, 0, total)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		// go-fitz uses 0-based indexing
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return written, fmt.Errorf("failed to render page %d: %w", i+1, err)
		}

		outPath := filepath.Join(outDir, PageFileName(pdfPath, i))
		if err := imaging.Save(img, outPath); err != nil {
			return written, fmt.Errorf("failed to write page %d: %w", i+1, err)
		}
		written = append(written, outPath)

		log.Debug().
			Int("page", i+1).
			Int("width", img.Bounds().Dx()).
			Int("height", img.Bounds().Dy()).
			Str("output", outPath).
			Msg("rendered page")

		if progress != nil {
			progress(i+1, total)
		}
	}

	log.Info().Str("input", pdfPath).Int("pages", total).Dur("duration", time.Since(start)).Msg("PDF rendered")
	return written, nil
}

// RemoveAll deletes the given files, ignoring ones that are already gone
func RemoveAll(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", p).Msg("failed to remove file")
		}
	}
}
