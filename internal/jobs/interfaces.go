package jobs

import (
	"context"

	"github.com/ytget/multitool/internal/model"
)

// ProgressFunc reports done units out of total while a job runs
type ProgressFunc func(done, total int)

// WorkFunc performs one action and returns the files it wrote
type WorkFunc func(ctx context.Context, progress ProgressFunc) ([]string, error)

// Runner defines the interface for the background job service.
type Runner interface {
	SetUpdateCallback(func(*model.Job))
	Submit(kind model.JobKind, inputs []string, fn WorkFunc) (*model.Job, error)
	Stop(jobID string) error
	Wait(ctx context.Context, jobID string) (*model.Job, error)
	GetJob(jobID string) (*model.Job, bool)
	GetAllJobs() []*model.Job
	Remove(jobID string) error
}

var _ Runner = (*Service)(nil)
