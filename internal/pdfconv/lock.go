package pdfconv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/filetype"
	"github.com/ytget/multitool/internal/platform"
)

// AES key length used for locking
const LockKeyLength = 256

// ErrEmptyPassword is returned when locking without a password
var ErrEmptyPassword = errors.New("password must not be empty")

// LockConfig returns the pdfcpu configuration for a password; the same value
// protects opening and editing.
func LockConfig(password string) *model.Configuration {
	return model.NewAESConfiguration(password, password, LockKeyLength)
}

// Lock writes an AES-256 encrypted copy of inPath to outPath
func Lock(ctx context.Context, inPath, outPath, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if err := filetype.RequirePDF(inPath); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(outPath)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := api.EncryptFile(inPath, outPath, LockConfig(password)); err != nil {
		if !platform.SamePath(inPath, outPath) {
			os.Remove(outPath)
		}
		return fmt.Errorf("failed to encrypt PDF: %w", err)
	}

	log.Info().Str("input", inPath).Str("output", outPath).Msg("PDF locked")
	return nil
}

// Unlock writes a decrypted copy of a locked PDF; it fails on a wrong password
func Unlock(inPath, outPath, password string) error {
	if err := api.DecryptFile(inPath, outPath, LockConfig(password)); err != nil {
		return fmt.Errorf("failed to decrypt PDF: %w", err)
	}
	return nil
}
