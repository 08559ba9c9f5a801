package pdfconv

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// writeImage saves a solid w x h image; the extension picks the format
func writeImage(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(w, h, c)
	require.NoError(t, imaging.Save(img, path))
	return path
}

// writeSamplePDF builds a PDF with one page per given size
func writeSamplePDF(t *testing.T, dir string, sizes ...image.Point) string {
	t.Helper()
	var images []string
	for i, s := range sizes {
		images = append(images, writeImage(t, dir, "src"+string(rune('a'+i))+".png", s.X, s.Y, color.NRGBA{R: uint8(40 * i), G: 120, B: 200, A: 255}))
	}
	out := filepath.Join(dir, "sample.pdf")
	require.NoError(t, ImagesToPDF(context.Background(), images, out))
	return out
}
