// Package filetype sniffs file contents so actions can reject inputs of the
// wrong kind before handing them to a conversion library.
package filetype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedType is returned when a file's content does not match the action
var ErrUnsupportedType = errors.New("unsupported file type")

// MIME types accepted by the actions
const (
	MimePDF  = "application/pdf"
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC  = "application/msword"
	MimeODT  = "application/vnd.oasis.opendocument.text"
	MimeRTF  = "text/rtf"
)

// Extension filters for the file dialogs
var (
	PDFExtensions   = []string{".pdf"}
	ImageExtensions = []string{".png", ".jpg", ".jpeg"}
	WordExtensions  = []string{".docx", ".doc", ".odt", ".rtf"}
	JPEGExtensions  = []string{".jpg", ".jpeg"}
)

// Detect returns the MIME type of the file at path
func Detect(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type of %s: %w", path, err)
	}
	return mt.String(), nil
}

// IsPDF reports whether the file is a PDF document
func IsPDF(path string) (bool, error) {
	return is(path, MimePDF)
}

// IsImage reports whether the file is a PNG or JPEG image
func IsImage(path string) (bool, error) {
	return is(path, MimePNG, MimeJPEG)
}

// IsWordDocument reports whether the file is a word-processing document
func IsWordDocument(path string) (bool, error) {
	return is(path, MimeDOCX, MimeDOC, MimeODT, MimeRTF)
}

// RequirePDF returns ErrUnsupportedType unless path is a PDF
func RequirePDF(path string) error {
	return requireKind(path, "PDF", IsPDF)
}

// RequireImage returns ErrUnsupportedType unless path is a PNG or JPEG image
func RequireImage(path string) error {
	return requireKind(path, "PNG or JPEG image", IsImage)
}

// RequireWordDocument returns ErrUnsupportedType unless path is a word-processing document
func RequireWordDocument(path string) error {
	return requireKind(path, "Word document", IsWordDocument)
}

func is(path string, allowed ...string) (bool, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to detect file type of %s: %w", path, err)
	}
	return mimetype.EqualsAny(baseType(mt.String()), allowed...), nil
}

func requireKind(path, want string, check func(string) (bool, error)) error {
	ok, err := check(path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s is not a %s", ErrUnsupportedType, path, want)
	}
	return nil
}

// baseType strips MIME parameters such as "; charset=utf-8"
func baseType(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		return strings.TrimSpace(mime[:i])
	}
	return mime
}
