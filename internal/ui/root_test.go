package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/multitool/internal/config"
	"github.com/ytget/multitool/internal/jobs"
	"github.com/ytget/multitool/internal/model"
)

func newTestRootUI(t *testing.T) (*RootUI, *jobs.Service) {
	t.Helper()
	a := test.NewApp()
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	settings := config.NewSettings(a)
	settings.SetOutputDirectory(t.TempDir())
	settings.SetLanguage("en")

	svc := jobs.NewService()
	ui := NewRootUI(w, a, settings, svc)
	// Updates are applied by the test itself
	svc.SetUpdateCallback(nil)
	return ui, svc
}

func runJob(t *testing.T, svc *jobs.Service, kind model.JobKind, fn jobs.WorkFunc) *model.Job {
	t.Helper()
	job, err := svc.Submit(kind, []string{"/tmp/in.png"}, fn)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	done, err := svc.Wait(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	return done
}

func TestRootUI_ActionButtons(t *testing.T) {
	ui, _ := newTestRootUI(t)

	if len(ui.actionButtons) != len(model.JobKinds()) {
		t.Fatalf("Expected %d action buttons, got %d", len(model.JobKinds()), len(ui.actionButtons))
	}
	if got := ui.actionButtons[model.JobKindPassportPhotos].Text; got != "Make Passport Size Photo" {
		t.Errorf("Unexpected passport button text %q", got)
	}
	if ui.window.Title() != "Multi-Utility App" {
		t.Errorf("Unexpected window title %q", ui.window.Title())
	}
}

func TestRootUI_LanguageChange(t *testing.T) {
	ui, _ := newTestRootUI(t)

	ui.onLanguageChange("ru")

	if ui.settings.GetLanguage() != "ru" {
		t.Errorf("Language not persisted, got %s", ui.settings.GetLanguage())
	}
	if got := ui.actionButtons[model.JobKindLockPDF].Text; got != "Защитить PDF паролем" {
		t.Errorf("Button not translated, got %q", got)
	}
}

func TestRootUI_CompletedJob(t *testing.T) {
	ui, svc := newTestRootUI(t)

	job := runJob(t, svc, model.JobKindImagesToPDF, func(context.Context, jobs.ProgressFunc) ([]string, error) {
		return []string{"/tmp/out.pdf"}, nil
	})
	ui.applyJobUpdate(job)

	if len(ui.jobs) != 1 || ui.jobs[0].ID != job.ID {
		t.Fatalf("Job list not reloaded: %v", ui.jobs)
	}
	if ui.lastStatus[job.ID] != model.JobStatusCompleted {
		t.Errorf("Unexpected last status %s", ui.lastStatus[job.ID])
	}
	if ui.notificationContainer.Hidden {
		t.Error("Completion should show the notification panel")
	}
	if ui.notificationLabel.Text != "Images Converted to PDF" {
		t.Errorf("Unexpected notification %q", ui.notificationLabel.Text)
	}

	ui.onRemoveJob(job.ID)
	if len(ui.jobs) != 0 {
		t.Errorf("Expected empty list after remove, got %d", len(ui.jobs))
	}
}

func TestRootUI_FailedJob(t *testing.T) {
	ui, svc := newTestRootUI(t)

	job := runJob(t, svc, model.JobKindCompressImage, func(context.Context, jobs.ProgressFunc) ([]string, error) {
		return nil, errors.New("decode failed")
	})
	ui.applyJobUpdate(job)

	if !strings.Contains(ui.notificationLabel.Text, "decode failed") {
		t.Errorf("Notification should carry the error, got %q", ui.notificationLabel.Text)
	}
	if ui.hasActiveJobs() {
		t.Error("No job should be active")
	}
}

func TestRootUI_CompletionMessage(t *testing.T) {
	ui, _ := newTestRootUI(t)

	pages := &model.Job{Kind: model.JobKindPDFToImages, Outputs: []string{"a.png", "b.png"}}
	if got := ui.completionMessage(pages); got != "PDF Converted to Images (2)" {
		t.Errorf("Unexpected message %q", got)
	}

	sheets := &model.Job{Kind: model.JobKindPassportPhotos, Outputs: []string{"/tmp/p.jpg"}}
	if got := ui.completionMessage(sheets); !strings.HasSuffix(got, "/tmp/p.jpg") {
		t.Errorf("Passport message should name the file, got %q", got)
	}
}
