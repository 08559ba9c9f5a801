package ui

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/multitool/internal/model"
)

// Progress calculation constants
const (
	MaxProgressPercent  = 100
	MinProgressPercent  = 1
	RoundingCoefficient = 0.5
)

// JobRow represents a compact job row widget
type JobRow struct {
	widget.BaseWidget

	job          *model.Job
	localization *Localization

	// UI components
	titleLabel    *widget.Label
	kindLabel     *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	progressBar   *widget.ProgressBar

	// Action buttons
	stopBtn   *widget.Button
	revealBtn *widget.Button // reveal in file manager
	openBtn   *widget.Button // open with default app
	removeBtn *widget.Button

	// Callbacks
	onStop   func(jobID string)
	onReveal func(filePath string)
	onOpen   func(filePath string)
	onRemove func(jobID string)
}

// NewJobRow creates a new job row widget
func NewJobRow(job *model.Job, localization *Localization) *JobRow {
	if job == nil {
		job = &model.Job{ID: "placeholder", Status: model.JobStatusPending}
	}

	jr := &JobRow{
		job:          job,
		localization: localization,
	}
	jr.ExtendBaseWidget(jr)
	jr.createUI()
	jr.updateFromJob()
	return jr
}

// SetCallbacks sets the action callbacks
func (jr *JobRow) SetCallbacks(
	onStop func(jobID string),
	onReveal func(filePath string),
	onOpen func(filePath string),
	onRemove func(jobID string),
) {
	jr.onStop = onStop
	jr.onReveal = onReveal
	jr.onOpen = onOpen
	jr.onRemove = onRemove
}

// UpdateJob updates the row with new job data
func (jr *JobRow) UpdateJob(job *model.Job) {
	if job == nil {
		return
	}
	jr.job = job
	jr.updateFromJob()
	jr.Refresh()
}

// createUI creates the UI components
func (jr *JobRow) createUI() {
	jr.titleLabel = widget.NewLabel("")
	jr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	jr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	jr.kindLabel = widget.NewLabel("")
	jr.kindLabel.Importance = widget.LowImportance
	jr.kindLabel.Truncation = fyne.TextTruncateEllipsis

	jr.statusLabel = widget.NewLabel("")
	jr.statusLabel.Alignment = fyne.TextAlignTrailing
	jr.progressLabel = widget.NewLabel("")
	jr.progressLabel.Alignment = fyne.TextAlignTrailing

	jr.progressBar = widget.NewProgressBar()
	jr.progressBar.TextFormatter = func() string { return "" }

	// Callbacks read jr.job at tap time, rows are recycled by the list
	jr.stopBtn = widget.NewButton(jr.localization.GetText(KeyStop), func() {
		if jr.onStop != nil {
			jr.onStop(jr.job.ID)
		}
	})
	jr.revealBtn = widget.NewButton(jr.localization.GetText(KeyReveal), func() {
		if out := jr.job.PrimaryOutput(); out != "" && jr.onReveal != nil {
			jr.onReveal(out)
		}
	})
	jr.openBtn = widget.NewButton(jr.localization.GetText(KeyOpen), func() {
		if out := jr.job.PrimaryOutput(); out != "" && jr.onOpen != nil {
			jr.onOpen(out)
		}
	})
	jr.removeBtn = widget.NewButton(IconClose, func() {
		if jr.onRemove != nil {
			jr.onRemove(jr.job.ID)
		}
	})
	jr.removeBtn.Importance = widget.LowImportance
}

// updateFromJob updates UI components based on job state
func (jr *JobRow) updateFromJob() {
	jr.titleLabel.SetText(jr.job.GetDisplayTitle())

	kindText := jr.localization.ActionText(jr.job.Kind)
	if d := jr.job.Duration(); d > 0 {
		kindText += MiddleDotSeparator + d.Round(100*time.Millisecond).String()
	}
	if jr.job.Status == model.JobStatusError && jr.job.LastError != "" {
		kindText = jr.job.LastError
	}
	jr.kindLabel.SetText(kindText)

	switch jr.job.Status {
	case model.JobStatusError:
		jr.statusLabel.Importance = widget.DangerImportance
		jr.statusLabel.SetText(IconError + " " + jr.localization.GetText(KeyJobFailed))
	case model.JobStatusCompleted:
		jr.statusLabel.Importance = widget.SuccessImportance
		jr.statusLabel.SetText(jr.localization.GetText(KeyJobCompleted))
	case model.JobStatusRunning:
		jr.statusLabel.Importance = widget.HighImportance
		jr.statusLabel.SetText(IconRunning + " " + jr.localization.GetText(KeyWorking))
	case model.JobStatusStopping, model.JobStatusStopped:
		jr.statusLabel.Importance = widget.MediumImportance
		jr.statusLabel.SetText(IconStop + " " + jr.localization.GetText(KeyJobStopped))
	default:
		jr.statusLabel.Importance = widget.MediumImportance
		jr.statusLabel.SetText(IconPending + " " + jr.job.Status.String())
	}

	percent := effectivePercent(jr.job)
	jr.progressBar.SetValue(float64(percent) / MaxProgressPercent)
	if jr.job.Status.IsFinished() {
		jr.progressLabel.SetText("")
	} else {
		jr.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, percent))
	}

	jr.updateButtons()
}

// effectivePercent never shows 0% once work has started
func effectivePercent(job *model.Job) int {
	if job.Status == model.JobStatusCompleted {
		return MaxProgressPercent
	}
	percent := job.Percent
	if percent <= 0 && job.Progress > 0 {
		percent = int(job.Progress*MaxProgressPercent + RoundingCoefficient)
		if percent == 0 {
			percent = MinProgressPercent
		}
	}
	if percent < 0 {
		percent = 0
	}
	if percent > MaxProgressPercent {
		percent = MaxProgressPercent
	}
	return percent
}

// updateButtons updates button states based on job status
func (jr *JobRow) updateButtons() {
	jr.stopBtn.SetText(jr.localization.GetText(KeyStop))
	jr.revealBtn.SetText(jr.localization.GetText(KeyReveal))
	jr.openBtn.SetText(jr.localization.GetText(KeyOpen))

	if jr.job.Status.IsActive() {
		jr.stopBtn.Show()
		jr.removeBtn.Hide()
		if jr.job.Status == model.JobStatusStopping {
			jr.stopBtn.Disable()
		} else {
			jr.stopBtn.Enable()
		}
	} else {
		jr.stopBtn.Hide()
		jr.removeBtn.Show()
	}

	if jr.job.Status == model.JobStatusCompleted && jr.job.PrimaryOutput() != "" {
		jr.revealBtn.Enable()
		jr.openBtn.Enable()
	} else {
		jr.revealBtn.Disable()
		jr.openBtn.Disable()
	}
}

// CreateRenderer creates the widget renderer
func (jr *JobRow) CreateRenderer() fyne.WidgetRenderer {
	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewVBox(
		fixedWidth(StatusLabelWidth, jr.statusLabel),
		fixedWidth(PercentLabelWidth, jr.progressLabel),
	)
	actions := container.NewHBox(jr.stopBtn, jr.revealBtn, jr.openBtn, jr.removeBtn)
	right := container.NewBorder(nil, nil, nil, actions, info)
	text := container.NewVBox(jr.titleLabel, jr.kindLabel)

	main := container.NewBorder(nil, nil, nil, right, text)
	return widget.NewSimpleRenderer(container.NewVBox(main, jr.progressBar, widget.NewSeparator()))
}
