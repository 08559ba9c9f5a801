// Package office converts word-processing documents to PDF by driving a
// headless LibreOffice process.
package office

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/filetype"
	"github.com/ytget/multitool/internal/platform"
)

// LibreOffice command-line constants
const (
	DefaultBinary   = "soffice"
	FallbackBinary  = "libreoffice"
	DefaultTimeout  = 180 * time.Second
	ConvertTarget   = "pdf"
	ProfileDirName  = "multitool_lo_profile_"
	OutputDirName   = "multitool_lo_out_"
	OutputExtension = ".pdf"
)

// ErrOfficeNotFound is returned when no LibreOffice executable can be located
var ErrOfficeNotFound = errors.New("LibreOffice not found; install it or set its path in Settings")

// Converter handles document conversion using LibreOffice
type Converter struct {
	Binary  string
	Timeout time.Duration
}

// NewConverter creates a converter for the given executable and timeout
func NewConverter(binary string, timeout time.Duration) *Converter {
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Converter{Binary: binary, Timeout: timeout}
}

// Resolve returns the executable path, trying the fallback name when the
// default one is missing
func (c *Converter) Resolve() (string, error) {
	if p, err := exec.LookPath(c.Binary); err == nil {
		return p, nil
	}
	if c.Binary == DefaultBinary {
		if p, err := exec.LookPath(FallbackBinary); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (%s)", ErrOfficeNotFound, c.Binary)
}

// Available reports whether a LibreOffice executable can be found
func (c *Converter) Available() bool {
	_, err := c.Resolve()
	return err == nil
}

// BuildArgs builds the LibreOffice command arguments
func BuildArgs(profileDir, outDir, inputPath string) []string {
	return []string{
		"-env:UserInstallation=" + profileURL(profileDir),
		"--headless",
		"--norestore",
		"--nologo",
		"--nolockcheck",
		"--convert-to", ConvertTarget,
		"--outdir", outDir,
		inputPath,
	}
}

// ConvertToPDF converts inputPath to a PDF written at outputPath
func (c *Converter) ConvertToPDF(ctx context.Context, inputPath, outputPath string) error {
	startTime := time.Now()

	if err := validateInput(inputPath); err != nil {
		return err
	}

	bin, err := c.Resolve()
	if err != nil {
		return err
	}

	// Unique profile per run so a running LibreOffice instance does not grab the job
	runID := uuid.New().String()
	profileDir := filepath.Join(os.TempDir(), ProfileDirName+runID)
	outDir := filepath.Join(os.TempDir(), OutputDirName+runID)
	for _, d := range []string{profileDir, outDir} {
		if err := os.MkdirAll(d, platform.DefaultDirPermissions); err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
		defer os.RemoveAll(d)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	args := BuildArgs(profileDir, outDir, inputPath)
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug().Str("cmd", bin+" "+strings.Join(args, " ")).Msg("LibreOffice command")
	log.Info().Str("input", inputPath).Str("output", outputPath).Msg("starting Word to PDF conversion")

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("conversion timeout after %v", c.Timeout)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("conversion failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	produced := ExpectedOutputPath(inputPath, outDir)
	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("output file not created: %s", strings.TrimSpace(stderr.String()))
	}

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(outputPath)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := moveFile(produced, outputPath); err != nil {
		return fmt.Errorf("failed to move converted PDF: %w", err)
	}

	log.Info().Str("output", outputPath).Dur("duration", time.Since(startTime)).Msg("conversion successful")
	return nil
}

// ExpectedOutputPath calculates where LibreOffice writes the converted file
func ExpectedOutputPath(inputPath, outputDir string) string {
	return filepath.Join(outputDir, platform.Stem(inputPath)+OutputExtension)
}

// validateInput checks that the input is a readable, non-empty document
func validateInput(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("file not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file")
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty")
	}
	return filetype.RequireWordDocument(filePath)
}

// profileURL turns a directory into the file URL LibreOffice expects
func profileURL(dir string) string {
	p := filepath.ToSlash(dir)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + p
}

// moveFile renames src to dst, copying when they are on different devices
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, platform.DefaultFilePermissions)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
