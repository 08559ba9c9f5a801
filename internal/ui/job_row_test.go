package ui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/multitool/internal/model"
)

func TestEffectivePercent(t *testing.T) {
	tests := []struct {
		name string
		job  model.Job
		want int
	}{
		{"pending", model.Job{Status: model.JobStatusPending}, 0},
		{"percent set", model.Job{Status: model.JobStatusRunning, Percent: 42}, 42},
		{"progress only", model.Job{Status: model.JobStatusRunning, Progress: 0.254}, 25},
		{"tiny progress", model.Job{Status: model.JobStatusRunning, Progress: 0.001}, MinProgressPercent},
		{"over range", model.Job{Status: model.JobStatusRunning, Percent: 140}, MaxProgressPercent},
		{"completed", model.Job{Status: model.JobStatusCompleted}, MaxProgressPercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := effectivePercent(&tt.job); got != tt.want {
				t.Errorf("effectivePercent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestJobRow_Running(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()
	loc.SetLanguage("en")

	job := &model.Job{
		ID:      "job-1",
		Kind:    model.JobKindCompressImage,
		Inputs:  []string{"/tmp/photo.png"},
		Status:  model.JobStatusRunning,
		Percent: 50,
	}
	row := NewJobRow(job, loc)

	if row.titleLabel.Text != "photo" {
		t.Errorf("Unexpected title %q", row.titleLabel.Text)
	}
	if !strings.HasPrefix(row.kindLabel.Text, "Compress Image") {
		t.Errorf("Unexpected kind text %q", row.kindLabel.Text)
	}
	if row.progressLabel.Text != "50%" {
		t.Errorf("Unexpected progress text %q", row.progressLabel.Text)
	}
	if row.stopBtn.Hidden || row.stopBtn.Disabled() {
		t.Error("Stop button should be visible and enabled while running")
	}
	if !row.removeBtn.Hidden {
		t.Error("Remove button should be hidden while running")
	}
	if !row.revealBtn.Disabled() || !row.openBtn.Disabled() {
		t.Error("Reveal and open need a completed output")
	}

	job.Status = model.JobStatusStopping
	row.UpdateJob(job)
	if !row.stopBtn.Disabled() {
		t.Error("Stop button should be disabled while stopping")
	}
}

func TestJobRow_CompletedAndFailed(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()
	loc.SetLanguage("en")

	var stopped, removed, revealed, opened string
	row := NewJobRow(nil, loc)
	row.SetCallbacks(
		func(id string) { stopped = id },
		func(path string) { revealed = path },
		func(path string) { opened = path },
		func(id string) { removed = id },
	)

	row.UpdateJob(&model.Job{
		ID:      "job-2",
		Kind:    model.JobKindLockPDF,
		Inputs:  []string{"/tmp/a.pdf"},
		Outputs: []string{"/tmp/a_locked.pdf"},
		Status:  model.JobStatusCompleted,
	})

	if row.statusLabel.Text != "Completed" {
		t.Errorf("Unexpected status %q", row.statusLabel.Text)
	}
	if row.progressLabel.Text != "" {
		t.Errorf("Finished jobs should not show a percentage, got %q", row.progressLabel.Text)
	}
	if !row.stopBtn.Hidden || row.removeBtn.Hidden {
		t.Error("Finished jobs show remove instead of stop")
	}

	test.Tap(row.revealBtn)
	test.Tap(row.openBtn)
	test.Tap(row.removeBtn)
	if revealed != "/tmp/a_locked.pdf" || opened != "/tmp/a_locked.pdf" {
		t.Errorf("Unexpected reveal/open targets %q %q", revealed, opened)
	}
	if removed != "job-2" {
		t.Errorf("Unexpected removed job %q", removed)
	}
	if stopped != "" {
		t.Errorf("Stop should not fire, got %q", stopped)
	}

	row.UpdateJob(&model.Job{
		ID:        "job-2",
		Kind:      model.JobKindLockPDF,
		Inputs:    []string{"/tmp/a.pdf"},
		Status:    model.JobStatusError,
		LastError: "password must not be empty",
	})
	if row.kindLabel.Text != "password must not be empty" {
		t.Errorf("Error rows show the error, got %q", row.kindLabel.Text)
	}
	if !row.revealBtn.Disabled() {
		t.Error("Reveal should be disabled for failed jobs")
	}
}
