package photo

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/multitool/internal/filetype"
)

// writeImage saves a solid w x h image; the extension picks the format
func writeImage(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(imaging.New(w, h, c), path))
	return path
}

func TestCompress_WritesJPEG(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "photo.png", 320, 200, color.NRGBA{R: 200, G: 30, B: 90, A: 255})
	out := filepath.Join(dir, "out", "photo_compressed.jpg")

	res, err := Compress(context.Background(), in, out, DefaultQuality)
	require.NoError(t, err)

	assert.Equal(t, out, res.Output)
	assert.Positive(t, res.InputSize)
	assert.Positive(t, res.OutputSize)

	mime, err := filetype.Detect(out)
	require.NoError(t, err)
	assert.Equal(t, filetype.MimeJPEG, mime)

	img, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(320, 200), img.Bounds().Size())
}

func TestCompress_RejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(in, []byte("plain text"), 0o644))

	_, err := Compress(context.Background(), in, filepath.Join(dir, "out.jpg"), DefaultQuality)
	assert.ErrorIs(t, err, filetype.ErrUnsupportedType)
}

func TestCompress_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "photo.png", 10, 10, color.White)
	out := filepath.Join(dir, "out.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compress(ctx, in, out, DefaultQuality)
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFlatten_TransparentBecomesWhite(t *testing.T) {
	img := imaging.New(4, 4, color.NRGBA{})
	flat := Flatten(img)

	r, g, b, a := flat.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestClampQuality(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultQuality},
		{-5, MinQuality},
		{1, 1},
		{30, 30},
		{100, 100},
		{250, MaxQuality},
	}
	for _, tt := range tests {
		if got := clampQuality(tt.in); got != tt.want {
			t.Errorf("clampQuality(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCompressResult_Ratio(t *testing.T) {
	assert.Equal(t, 0.0, CompressResult{}.Ratio())
	assert.InDelta(t, 0.25, CompressResult{InputSize: 400, OutputSize: 100}.Ratio(), 1e-9)
}
