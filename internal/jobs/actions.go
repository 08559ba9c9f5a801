package jobs

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/office"
	"github.com/ytget/multitool/internal/pdfconv"
	"github.com/ytget/multitool/internal/photo"
)

// PDFToImages renders every page of in as PNG files into outDir
func PDFToImages(in, outDir string, dpi int) WorkFunc {
	return func(ctx context.Context, progress ProgressFunc) ([]string, error) {
		written, err := pdfconv.RenderPages(ctx, in, outDir, dpi, pdfconv.ProgressFunc(progress))
		if err != nil && ctx.Err() == nil {
			pdfconv.RemoveAll(written)
		}
		return written, err
	}
}

// ImagesToPDF writes images, in order, as pages of out
func ImagesToPDF(images []string, out string) WorkFunc {
	return cleanupOnError(out, func(ctx context.Context, progress ProgressFunc) ([]string, error) {
		if err := pdfconv.ImagesToPDF(ctx, images, out); err != nil {
			return nil, err
		}
		return []string{out}, nil
	})
}

// WordToPDF converts a word-processing document with conv
func WordToPDF(conv *office.Converter, in, out string) WorkFunc {
	return cleanupOnError(out, func(ctx context.Context, progress ProgressFunc) ([]string, error) {
		if err := conv.ConvertToPDF(ctx, in, out); err != nil {
			return nil, err
		}
		return []string{out}, nil
	})
}

// CompressImage re-encodes in as a JPEG of the given quality
func CompressImage(in, out string, quality int) WorkFunc {
	return cleanupOnError(out, func(ctx context.Context, progress ProgressFunc) ([]string, error) {
		res, err := photo.Compress(ctx, in, out, quality)
		if err != nil {
			return nil, err
		}
		return []string{res.Output}, nil
	})
}

// LockPDF encrypts in with password
func LockPDF(in, out, password string) WorkFunc {
	return cleanupOnError(out, func(ctx context.Context, progress ProgressFunc) ([]string, error) {
		if err := pdfconv.Lock(ctx, in, out, password); err != nil {
			return nil, err
		}
		return []string{out}, nil
	})
}

// PassportPhotos lays out passport sheets as described by req
func PassportPhotos(req photo.PassportRequest) WorkFunc {
	return cleanupOnError(req.Output, func(ctx context.Context, progress ProgressFunc) ([]string, error) {
		req.Progress = pdfconv.ProgressFunc(progress)
		return photo.MakePassportSheets(ctx, req)
	})
}

// cleanupOnError wraps fn so that a failed or stopped run leaves nothing at
// out that it wrote. A file that was already there and was not touched stays.
func cleanupOnError(out string, fn WorkFunc) WorkFunc {
	return func(ctx context.Context, progress ProgressFunc) ([]string, error) {
		before, statErr := os.Stat(out)
		outputs, err := fn(ctx, progress)
		if err != nil {
			removeWritten(out, statErr == nil, before)
		}
		return outputs, err
	}
}

// removeWritten deletes path unless it is the unchanged file seen before the run
func removeWritten(path string, existed bool, before os.FileInfo) {
	after, err := os.Stat(path)
	if err != nil || after.IsDir() {
		return
	}
	if existed && after.Size() == before.Size() && after.ModTime().Equal(before.ModTime()) {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Warn().Err(err).Str("output", path).Msg("failed to remove output of failed job")
		return
	}
	log.Debug().Str("output", path).Msg("removed output of failed job")
}
