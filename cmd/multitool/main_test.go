package main

import (
	"bytes"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/multitool/internal/config"
	"github.com/ytget/multitool/internal/office"
	"github.com/ytget/multitool/internal/pdfconv"
	"github.com/ytget/multitool/internal/photo"
)

// execute runs the command tree with args and returns the printed lines
func execute(t *testing.T, args ...string) ([]string, error) {
	t.Helper()
	t.Setenv(config.EnvLogFile, "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--log-level", "error"))

	err := cmd.Execute()
	return strings.Fields(out.String()), err
}

func writeImage(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(imaging.New(w, h, c), path))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, []string{"multitool", version}, out)
}

func TestImg2PDF(t *testing.T) {
	dir := t.TempDir()
	a := writeImage(t, dir, "a.png", 40, 60, color.White)
	b := writeImage(t, dir, "b.jpg", 60, 40, color.Black)
	out := filepath.Join(dir, "album")

	lines, err := execute(t, "img2pdf", a, b, "--out", out)
	require.NoError(t, err)
	require.Equal(t, []string{out + ".pdf"}, lines)

	pages, err := pdfconv.PageCount(lines[0])
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
}

func TestImg2PDF_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	a := writeImage(t, dir, "a.png", 10, 10, color.White)

	lines, err := execute(t, "img2pdf", a)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "images.pdf")}, lines)
}

func TestCompress_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "photo.png", 80, 80, color.NRGBA{R: 200, A: 255})

	lines, err := execute(t, "compress", in, "--quality", "50")
	require.NoError(t, err)

	want := filepath.Join(dir, "photo_compressed.jpg")
	require.Equal(t, []string{want}, lines)
	_, err = os.Stat(want)
	assert.NoError(t, err)
}

func TestCompress_RejectsNonImage(t *testing.T) {
	in := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(in, []byte("plain text"), 0o644))

	_, err := execute(t, "compress", in)
	assert.Error(t, err)
}

func TestLock(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir, "page.png", 50, 50, color.White)
	in := filepath.Join(dir, "doc.pdf")
	require.NoError(t, pdfconv.ImagesToPDF(t.Context(), []string{img}, in))

	lines, err := execute(t, "lock", in, "--password", "s3cret")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "doc_locked.pdf")}, lines)

	assert.Error(t, pdfconv.Unlock(lines[0], filepath.Join(dir, "wrong.pdf"), "nope"))
	assert.NoError(t, pdfconv.Unlock(lines[0], filepath.Join(dir, "open.pdf"), "s3cret"))
}

func TestLock_RequiresPassword(t *testing.T) {
	_, err := execute(t, "lock", "doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestPassport(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "face.jpg", 300, 400, color.NRGBA{B: 200, A: 255})

	lines, err := execute(t, "passport", in, "--count", "4", "--size", "35x45mm", "--crop", "10,10,200,250")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "passport_photos.jpg")}, lines)

	sheet, err := imaging.Open(lines[0])
	require.NoError(t, err)
	assert.Equal(t, 2480, sheet.Bounds().Dx())
	assert.Equal(t, 3508, sheet.Bounds().Dy())
}

func TestPassport_PDFOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "face.png", 100, 120, color.White)
	out := filepath.Join(dir, "sheets.pdf")

	lines, err := execute(t, "passport", in, "--count", "30", "--size", "35x45mm", "--out", out)
	require.NoError(t, err)
	require.Equal(t, []string{out}, lines)

	pages, err := pdfconv.PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)
}

func TestPassport_InvalidFlags(t *testing.T) {
	dir := t.TempDir()
	in := writeImage(t, dir, "face.png", 10, 10, color.White)

	_, err := execute(t, "passport", in, "--count", "0")
	assert.ErrorIs(t, err, photo.ErrInvalidCount)

	_, err = execute(t, "passport", in, "--count", "51")
	assert.ErrorIs(t, err, photo.ErrInvalidCount)

	_, err = execute(t, "passport", in, "--size", "10x10mm")
	assert.ErrorContains(t, err, "unknown photo size")

	_, err = execute(t, "passport", in, "--crop", "1,2")
	assert.ErrorContains(t, err, "invalid crop")
}

func TestWord2PDF_MissingOffice(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "letter.docx")
	require.NoError(t, os.WriteFile(in, []byte("x"), 0o644))

	_, err := execute(t, "word2pdf", in, "--soffice", filepath.Join(dir, "no-soffice"))
	assert.ErrorIs(t, err, office.ErrOfficeNotFound)
}

func TestPDF2Img(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MuPDF rendering in short mode")
	}
	dir := t.TempDir()
	a := writeImage(t, dir, "a.png", 50, 50, color.White)
	b := writeImage(t, dir, "b.png", 50, 50, color.Black)
	in := filepath.Join(dir, "scan.pdf")
	require.NoError(t, pdfconv.ImagesToPDF(t.Context(), []string{a, b}, in))

	outDir := filepath.Join(dir, "pages")
	lines, err := execute(t, "pdf2img", in, "--out", outDir, "--dpi", "72")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(outDir, "scan_page_0.png"),
		filepath.Join(outDir, "scan_page_1.png"),
	}, lines)
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "explode")
	assert.Error(t, err)
}
