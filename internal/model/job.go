package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// JobKind identifies which of the six actions a job runs
type JobKind string

const (
	JobKindPDFToImages    JobKind = "pdf_to_images"
	JobKindImagesToPDF    JobKind = "images_to_pdf"
	JobKindWordToPDF      JobKind = "word_to_pdf"
	JobKindCompressImage  JobKind = "compress_image"
	JobKindLockPDF        JobKind = "lock_pdf"
	JobKindPassportPhotos JobKind = "passport_photos"
)

// JobKinds returns every action in the order the window shows them
func JobKinds() []JobKind {
	return []JobKind{
		JobKindPDFToImages,
		JobKindImagesToPDF,
		JobKindWordToPDF,
		JobKindCompressImage,
		JobKindLockPDF,
		JobKindPassportPhotos,
	}
}

// Label returns a short English label for logs and job rows
func (k JobKind) Label() string {
	switch k {
	case JobKindPDFToImages:
		return "PDF to Image"
	case JobKindImagesToPDF:
		return "Image to PDF"
	case JobKindWordToPDF:
		return "Word to PDF"
	case JobKindCompressImage:
		return "Compress Image"
	case JobKindLockPDF:
		return "Lock PDF"
	case JobKindPassportPhotos:
		return "Passport Photos"
	default:
		return string(k)
	}
}

// Job represents a single run of one action
type Job struct {
	ID         string
	Kind       JobKind
	Inputs     []string // source files, in the order the user chose them
	Outputs    []string // files written, in the order they were produced
	Status     JobStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayTitle returns the first input name, with a counter when there are more
func (j *Job) GetDisplayTitle() string {
	if len(j.Inputs) == 0 {
		return j.Kind.Label()
	}

	name := filepath.Base(j.Inputs[0])
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}

	if len(j.Inputs) > 1 {
		return fmt.Sprintf("%s (+%d)", name, len(j.Inputs)-1)
	}
	return name
}

// PrimaryOutput returns the first written file or an empty string
func (j *Job) PrimaryOutput() string {
	if len(j.Outputs) == 0 {
		return ""
	}
	return j.Outputs[0]
}

// Duration returns how long the job ran; zero while it is still running
func (j *Job) Duration() time.Duration {
	if j.FinishedAt.IsZero() || j.StartedAt.IsZero() {
		return 0
	}
	return j.FinishedAt.Sub(j.StartedAt)
}

// Clone returns a copy that is safe to hand to another goroutine
func (j *Job) Clone() *Job {
	c := *j
	c.Inputs = append([]string(nil), j.Inputs...)
	c.Outputs = append([]string(nil), j.Outputs...)
	return &c
}
