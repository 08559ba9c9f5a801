package office

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConverter_Defaults(t *testing.T) {
	c := NewConverter("", 0)
	assert.Equal(t, DefaultBinary, c.Binary)
	assert.Equal(t, DefaultTimeout, c.Timeout)

	c = NewConverter("/opt/lo/soffice", time.Minute)
	assert.Equal(t, "/opt/lo/soffice", c.Binary)
	assert.Equal(t, time.Minute, c.Timeout)
}

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("/tmp/profile", "/tmp/out", "/docs/report.docx")

	expectedArgs := []string{
		"-env:UserInstallation=file:///tmp/profile",
		"--headless",
		"--norestore",
		"--nologo",
		"--nolockcheck",
		"--convert-to", "pdf",
		"--outdir", "/tmp/out",
		"/docs/report.docx",
	}

	assert.Equal(t, expectedArgs, args)
}

func TestExpectedOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/tmp/out", "report.pdf"), ExpectedOutputPath("/docs/report.docx", "/tmp/out"))
	assert.Equal(t, filepath.Join("/tmp/out", "my.notes.pdf"), ExpectedOutputPath("my.notes.odt", "/tmp/out"))
}

func TestResolve_MissingBinary(t *testing.T) {
	c := NewConverter("definitely-not-an-office-suite", time.Second)
	_, err := c.Resolve()
	assert.ErrorIs(t, err, ErrOfficeNotFound)
	assert.False(t, c.Available())
}

func TestConvertToPDF_InputValidation(t *testing.T) {
	dir := t.TempDir()
	c := NewConverter("definitely-not-an-office-suite", time.Second)

	err := c.ConvertToPDF(context.Background(), filepath.Join(dir, "missing.docx"), filepath.Join(dir, "out.pdf"))
	assert.ErrorContains(t, err, "file not found")

	empty := filepath.Join(dir, "empty.docx")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	err = c.ConvertToPDF(context.Background(), empty, filepath.Join(dir, "out.pdf"))
	assert.ErrorContains(t, err, "file is empty")

	err = c.ConvertToPDF(context.Background(), dir, filepath.Join(dir, "out.pdf"))
	assert.ErrorContains(t, err, "directory")
}

func TestConvertToPDF_MissingOffice(t *testing.T) {
	dir := t.TempDir()
	doc := writeDocx(t, dir, "report.docx")
	c := NewConverter("definitely-not-an-office-suite", time.Second)

	err := c.ConvertToPDF(context.Background(), doc, filepath.Join(dir, "out.pdf"))
	assert.ErrorIs(t, err, ErrOfficeNotFound)
}

func TestConvertToPDF_LibreOffice(t *testing.T) {
	c := NewConverter(DefaultBinary, 2*time.Minute)
	if testing.Short() || !c.Available() {
		t.Skip("LibreOffice not available")
	}

	dir := t.TempDir()
	doc := writeDocx(t, dir, "report.docx")
	out := filepath.Join(dir, "nested", "report.pdf")

	require.NoError(t, c.ConvertToPDF(context.Background(), doc, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.pdf")
	dst := filepath.Join(dir, "b.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4"), 0o644))

	require.NoError(t, moveFile(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

// writeDocx writes a minimal WordprocessingML package
func writeDocx(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>Hello</w:t></w:r></w:p></w:body>
</w:document>`,
	}

	zw := zip.NewWriter(f)
	for _, n := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		w, err := zw.Create(n)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[n]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}
