// Package jobs runs conversion actions in the background and tracks their state.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/model"
)

// JobIDPrefix prefixes every job ID
const JobIDPrefix = "job-"

// ErrJobNotFound is returned for unknown job IDs
var ErrJobNotFound = errors.New("job not found")

type entry struct {
	job    *model.Job
	cancel context.CancelFunc
	done   chan struct{}
}

// Service runs jobs in goroutines
type Service struct {
	jobs      map[string]*entry
	jobsMutex sync.RWMutex
	onUpdate  func(*model.Job) // callback for UI updates
}

// NewService creates a new job service
func NewService() *Service {
	return &Service{
		jobs: make(map[string]*entry),
	}
}

// SetUpdateCallback sets the callback function for job updates. The callback
// receives a copy of the job and runs on the job's goroutine.
func (s *Service) SetUpdateCallback(callback func(*model.Job)) {
	s.jobsMutex.Lock()
	s.onUpdate = callback
	s.jobsMutex.Unlock()
}

// Submit registers a job and starts fn in the background
func (s *Service) Submit(kind model.JobKind, inputs []string, fn WorkFunc) (*model.Job, error) {
	if fn == nil {
		return nil, fmt.Errorf("no work given for %s", kind)
	}

	s.jobsMutex.Lock()

	// Check if the same action is already running on the same inputs
	for _, e := range s.jobs {
		if e.job.Kind == kind && e.job.Status.IsActive() && slices.Equal(e.job.Inputs, inputs) {
			s.jobsMutex.Unlock()
			return nil, fmt.Errorf("%s already in progress for: %s", kind.Label(), e.job.GetDisplayTitle())
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &model.Job{
		ID:        generateJobID(),
		Kind:      kind,
		Inputs:    append([]string(nil), inputs...),
		Status:    model.JobStatusPending,
		StartedAt: time.Now(),
	}
	e := &entry{job: job, cancel: cancel, done: make(chan struct{})}
	s.jobs[job.ID] = e
	snapshot := job.Clone()
	s.jobsMutex.Unlock()

	s.notifyUpdate(job)

	// Start work in background
	go s.run(ctx, e, fn)

	return snapshot, nil
}

// Stop cancels a running job
func (s *Service) Stop(jobID string) error {
	s.jobsMutex.Lock()
	e, exists := s.jobs[jobID]
	if !exists {
		s.jobsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if !e.job.Status.IsActive() {
		s.jobsMutex.Unlock()
		return fmt.Errorf("job is not active: %s", e.job.Status)
	}
	e.job.Status = model.JobStatusStopping
	s.jobsMutex.Unlock()

	e.cancel()
	s.notifyUpdate(e.job)
	return nil
}

// Wait blocks until the job finishes or ctx is done and returns its final state
func (s *Service) Wait(ctx context.Context, jobID string) (*model.Job, error) {
	s.jobsMutex.RLock()
	e, exists := s.jobs[jobID]
	s.jobsMutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	select {
	case <-e.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	job, _ := s.GetJob(jobID)
	return job, nil
}

// GetJob returns a copy of a job by ID
func (s *Service) GetJob(jobID string) (*model.Job, bool) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	e, exists := s.jobs[jobID]
	if !exists {
		return nil, false
	}
	return e.job.Clone(), true
}

// GetAllJobs returns copies of all jobs, oldest first
func (s *Service) GetAllJobs() []*model.Job {
	s.jobsMutex.RLock()
	list := make([]*model.Job, 0, len(s.jobs))
	for _, e := range s.jobs {
		list = append(list, e.job.Clone())
	}
	s.jobsMutex.RUnlock()

	// UUIDv7 IDs keep submission order when start times tie
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartedAt.Equal(list[j].StartedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].StartedAt.Before(list[j].StartedAt)
	})
	return list
}

// Remove forgets a finished job
func (s *Service) Remove(jobID string) error {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()

	e, exists := s.jobs[jobID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if !e.job.Status.IsFinished() {
		return fmt.Errorf("job is still active: %s", e.job.Status)
	}
	delete(s.jobs, jobID)
	return nil
}

// run performs the actual work
func (s *Service) run(ctx context.Context, e *entry, fn WorkFunc) {
	defer close(e.done)
	defer e.cancel()

	job := e.job
	logger := log.With().Str("job", job.ID).Str("kind", string(job.Kind)).Logger()

	// Update status to running unless a stop already arrived
	s.jobsMutex.Lock()
	if job.Status == model.JobStatusPending {
		job.Status = model.JobStatusRunning
	}
	s.jobsMutex.Unlock()
	s.notifyUpdate(job)

	logger.Info().Strs("inputs", job.Inputs).Msg("job started")

	outputs, err := s.call(ctx, job, fn)

	// Handle result; work that finished before a late stop still counts
	s.jobsMutex.Lock()
	switch {
	case err == nil:
		job.Status = model.JobStatusCompleted
		job.Outputs = outputs
		job.Progress = 1.0
		job.Percent = 100
	case ctx.Err() != nil:
		job.Status = model.JobStatusStopped
	default:
		job.Status = model.JobStatusError
		job.LastError = err.Error()
	}
	job.FinishedAt = time.Now()
	status, duration := job.Status, job.Duration()
	s.jobsMutex.Unlock()

	switch status {
	case model.JobStatusError:
		logger.Error().Err(err).Dur("duration", duration).Msg("job failed")
	case model.JobStatusStopped:
		logger.Warn().Dur("duration", duration).Msg("job stopped")
	default:
		logger.Info().Strs("outputs", outputs).Dur("duration", duration).Msg("job completed")
	}

	s.notifyUpdate(job)
}

// call runs fn, turning a panic into an error
func (s *Service) call(ctx context.Context, job *model.Job, fn WorkFunc) (outputs []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return fn(ctx, func(done, total int) {
		s.setProgress(job, done, total)
	})
}

// setProgress records progress for a job
func (s *Service) setProgress(job *model.Job, done, total int) {
	if total <= 0 {
		return
	}
	progress := float64(done) / float64(total)
	if progress > 1.0 {
		progress = 1.0
	}

	s.jobsMutex.Lock()
	job.Progress = progress
	job.Percent = int(progress * 100)
	s.jobsMutex.Unlock()

	s.notifyUpdate(job)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(job *model.Job) {
	s.jobsMutex.RLock()
	callback := s.onUpdate
	snapshot := job.Clone()
	s.jobsMutex.RUnlock()

	if callback != nil {
		callback(snapshot)
	}
}

// generateJobID generates a unique job ID using UUID v7 for time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
