package ui

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/config"
	"github.com/ytget/multitool/internal/jobs"
	"github.com/ytget/multitool/internal/model"
	"github.com/ytget/multitool/internal/office"
	"github.com/ytget/multitool/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	app          fyne.App
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	jobSvc       jobs.Runner

	actionButtons map[model.JobKind]*widget.Button
	jobList       *widget.List
	jobs          []*model.Job
	lastStatus    map[string]model.JobStatus

	// Directory offered first by the next file dialog
	lastDir string

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	notificationSeq       int
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, jobSvc jobs.Runner) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	outputDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		log.Warn().Err(err).Str("dir", outputDir).Msg("failed to ensure output directory")
	}

	ui := &RootUI{
		app:           app,
		window:        window,
		settings:      settings,
		localization:  localization,
		jobSvc:        jobSvc,
		actionButtons: make(map[model.JobKind]*widget.Button),
		lastStatus:    make(map[string]model.JobStatus),
		lastDir:       outputDir,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	jobSvc.SetUpdateCallback(ui.onJobUpdate)

	ui.setupUI()
	log.Debug().Str("language", localization.GetCurrentLanguage()).Msg("UI setup completed")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	handlers := map[model.JobKind]func(){
		model.JobKindPDFToImages:    ui.onPDFToImages,
		model.JobKindImagesToPDF:    ui.onImagesToPDF,
		model.JobKindWordToPDF:      ui.onWordToPDF,
		model.JobKindCompressImage:  ui.onCompressImage,
		model.JobKindLockPDF:        ui.onLockPDF,
		model.JobKindPassportPhotos: ui.onPassportPhotos,
	}

	buttons := container.NewVBox()
	for _, kind := range model.JobKinds() {
		btn := widget.NewButton(ui.localization.ActionText(kind), handlers[kind])
		btn.Importance = widget.HighImportance
		ui.actionButtons[kind] = btn
		buttons.Add(btn)
	}

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Notification panel under the buttons (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, ui.notificationSpinner, nil, ui.notificationLabel)
	ui.notificationContainer.Hide()

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, settingsBtn),
		buttons,
		ui.notificationContainer,
		widget.NewSeparator(),
	)

	ui.jobList = widget.NewList(
		func() int { return len(ui.jobs) },
		func() fyne.CanvasObject { return ui.createJobItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateJobItem(id, obj) },
	)

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.jobList))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for _, code := range []string{"en", "ru", "pt"} {
		langCode := code
		langItem := fyne.NewMenuItem(ui.localization.GetAvailableLanguages()[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	for kind, btn := range ui.actionButtons {
		btn.SetText(ui.localization.ActionText(kind))
	}
	ui.jobList.Refresh()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.app.Settings().SetTheme(NewAppTheme(ui.settings.GetDarkTheme()))
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
		ui.lastDir = ui.settings.GetOutputDirectory()
		ui.showNotification(ui.localization.GetText(KeySettingsSaved), false)
	})
}

// showNotification displays a message in the notification panel.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationSeq++
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
		ui.notificationSpinner.Start()
	} else {
		ui.notificationSpinner.Stop()
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// showTransientNotification shows message and hides it after a delay unless
// another message replaced it meanwhile
func (ui *RootUI) showTransientNotification(message string) {
	ui.showNotification(message, false)
	seq := ui.notificationSeq
	time.AfterFunc(NotificationAutoHide, func() {
		fyne.Do(func() {
			if ui.notificationSeq == seq && !ui.hasActiveJobs() {
				ui.hideNotification()
			}
		})
	})
}

// hideNotification hides the notification panel
func (ui *RootUI) hideNotification() {
	ui.notificationSpinner.Stop()
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}

// showError reports a failure in the notification panel
func (ui *RootUI) showError(err error) {
	msg := err.Error()
	if errors.Is(err, office.ErrOfficeNotFound) {
		msg = ui.localization.GetText(KeyOfficeMissing)
	}
	ui.showNotification(IconError+" "+msg, false)
}

// createJobItem creates a new job item widget
func (ui *RootUI) createJobItem() fyne.CanvasObject {
	row := NewJobRow(nil, ui.localization)
	row.SetCallbacks(ui.onStopJob, ui.onRevealFile, ui.onOpenFile, ui.onRemoveJob)
	return row
}

// updateJobItem binds a list item to current job data
func (ui *RootUI) updateJobItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id >= len(ui.jobs) {
		return
	}
	if row, ok := item.(*JobRow); ok {
		row.UpdateJob(ui.jobs[id])
	}
}

// reloadJobs takes a fresh snapshot, newest first
func (ui *RootUI) reloadJobs() {
	all := ui.jobSvc.GetAllJobs()
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	ui.jobs = all
	ui.jobList.Refresh()
}

// hasActiveJobs reports whether any listed job still runs
func (ui *RootUI) hasActiveJobs() bool {
	for _, j := range ui.jobs {
		if j.Status.IsActive() {
			return true
		}
	}
	return false
}

// onJobUpdate handles job updates from the jobs service
func (ui *RootUI) onJobUpdate(job *model.Job) {
	fyne.Do(func() { ui.applyJobUpdate(job) })
}

// applyJobUpdate refreshes the list and reacts to status transitions; it runs
// on the UI goroutine
func (ui *RootUI) applyJobUpdate(job *model.Job) {
	prev := ui.lastStatus[job.ID]
	ui.lastStatus[job.ID] = job.Status
	ui.reloadJobs()

	if prev == job.Status {
		return
	}

	switch job.Status {
	case model.JobStatusCompleted:
		ui.showTransientNotification(ui.completionMessage(job))
		ui.sendCompletionNotification(job)
		if ui.settings.GetAutoRevealOnComplete() && job.PrimaryOutput() != "" {
			ui.onRevealFile(job.PrimaryOutput())
		}
	case model.JobStatusError:
		ui.showError(errors.New(job.LastError))
	case model.JobStatusStopped:
		ui.showTransientNotification(ui.localization.GetText(KeyJobStopped) + ": " + job.GetDisplayTitle())
	case model.JobStatusRunning:
		ui.showNotification(ui.localization.GetText(KeyWorking)+": "+ui.localization.ActionText(job.Kind), true)
	}
}

// completionMessage returns the status line for a finished job
func (ui *RootUI) completionMessage(job *model.Job) string {
	msg := ui.localization.DoneText(job.Kind)
	switch job.Kind {
	case model.JobKindPassportPhotos:
		return fmt.Sprintf("%s %s", msg, job.PrimaryOutput())
	case model.JobKindPDFToImages:
		return fmt.Sprintf("%s (%d)", msg, len(job.Outputs))
	}
	return msg
}

// sendCompletionNotification sends a system notification and an in-app toast
func (ui *RootUI) sendCompletionNotification(job *model.Job) {
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.DoneText(job.Kind),
		Content: job.GetDisplayTitle(),
	})
	ui.showToastNotification(job)
}

// showToastNotification shows an in-app toast with reveal and open buttons
func (ui *RootUI) showToastNotification(job *model.Job) {
	titleLabel := widget.NewLabel(ui.localization.DoneText(job.Kind))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.Truncation = fyne.TextTruncateEllipsis

	messageLabel := widget.NewLabel(job.GetDisplayTitle())
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	output := job.PrimaryOutput()
	var toast *widget.PopUp

	revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() {
		toast.Hide()
		ui.onRevealFile(output)
	})
	revealBtn.Importance = widget.HighImportance
	openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() {
		toast.Hide()
		ui.onOpenFile(output)
	})
	closeBtn := widget.NewButton(IconClose, func() { toast.Hide() })
	closeBtn.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewBorder(nil, nil, nil, closeBtn, titleLabel),
		messageLabel,
		container.NewHBox(revealBtn, openBtn),
	)
	toast = widget.NewPopUp(content, ui.window.Canvas())

	canvasSize := ui.window.Canvas().Size()
	toast.Resize(fyne.NewSize(ToastWidth, ToastHeight))
	toast.Move(fyne.NewPos(canvasSize.Width-ToastWidth-ToastMargin, ToastMargin))
	toast.Show()

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toast.Hide)
	})
}

// onStopJob handles the stop button
func (ui *RootUI) onStopJob(jobID string) {
	if err := ui.jobSvc.Stop(jobID); err != nil {
		log.Warn().Err(err).Str("job", jobID).Msg("failed to stop job")
		ui.showError(err)
	}
}

// onRemoveJob removes a finished job from the list
func (ui *RootUI) onRemoveJob(jobID string) {
	if err := ui.jobSvc.Remove(jobID); err != nil {
		log.Warn().Err(err).Str("job", jobID).Msg("failed to remove job")
		ui.showError(err)
		return
	}
	delete(ui.lastStatus, jobID)
	ui.reloadJobs()
}

// onRevealFile reveals a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Error().Err(err).Str("file", filePath).Msg("failed to reveal file")
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

// onOpenFile opens a file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Error().Err(err).Str("file", filePath).Msg("failed to open file")
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}
