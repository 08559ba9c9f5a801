package ui

import (
	"fmt"
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/multitool/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	outputDirEntry     *widget.Entry
	dpiEntry           *widget.Entry
	qualityEntry       *widget.Entry
	officeBinaryEntry  *widget.Entry
	officeTimeoutEntry *widget.Entry
	languageSelect     *widget.Select
	autoRevealCheck    *widget.Check
	darkThemeCheck     *widget.Check

	languageCodes []string
}

// ShowSettingsDialog builds and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// intValidator accepts integers within [lo, hi]
func intValidator(lo, hi int) fyne.StringValidator {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("not a number")
		}
		if v < lo || v > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.outputDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	sd.dpiEntry = widget.NewEntry()
	sd.dpiEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinRenderDPI, config.MaxRenderDPI))
	sd.dpiEntry.Validator = intValidator(config.MinRenderDPI, config.MaxRenderDPI)

	sd.qualityEntry = widget.NewEntry()
	sd.qualityEntry.SetPlaceHolder(fmt.Sprintf("%d-%d", config.MinCompressQuality, config.MaxCompressQuality))
	sd.qualityEntry.Validator = intValidator(config.MinCompressQuality, config.MaxCompressQuality)

	sd.officeBinaryEntry = widget.NewEntry()
	sd.officeBinaryEntry.SetPlaceHolder(config.DefaultOfficeBinary)

	sd.officeTimeoutEntry = widget.NewEntry()
	sd.officeTimeoutEntry.Validator = intValidator(config.MinOfficeTimeoutSec, config.MaxOfficeTimeoutSec)

	// Language selection shows names, stores codes
	languageLabels := sd.settings.GetLanguageOptions()
	sd.languageCodes = make([]string, 0, len(languageLabels))
	for code := range languageLabels {
		sd.languageCodes = append(sd.languageCodes, code)
	}
	sort.Strings(sd.languageCodes)
	names := make([]string, 0, len(sd.languageCodes))
	for _, code := range sd.languageCodes {
		names = append(names, languageLabels[code])
	}
	sd.languageSelect = widget.NewSelect(names, nil)

	sd.autoRevealCheck = widget.NewCheck(t(KeyAutoReveal), nil)
	sd.darkThemeCheck = widget.NewCheck(t(KeyDarkTheme), nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle(t(KeyConversion), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem(t(KeyOutputDirectory), outputDirRow),
			widget.NewFormItem(t(KeyRenderDPI), sd.dpiEntry),
			widget.NewFormItem(t(KeyCompressQuality), sd.qualityEntry),
			widget.NewFormItem(t(KeyOfficeBinary), sd.officeBinaryEntry),
			widget.NewFormItem(t(KeyOfficeTimeout), sd.officeTimeoutEntry),
		),
		widget.NewLabelWithStyle(t(KeyInterface), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		widget.NewForm(widget.NewFormItem(t(KeyLanguage), sd.languageSelect)),
		sd.autoRevealCheck,
		sd.darkThemeCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(t(KeySettings), t(KeySave), t(KeyCancel), form, sd.onSave, sd.window)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.dpiEntry.SetText(strconv.Itoa(sd.settings.GetRenderDPI()))
	sd.qualityEntry.SetText(strconv.Itoa(sd.settings.GetCompressQuality()))
	sd.officeBinaryEntry.SetText(sd.settings.GetOfficeBinary())
	sd.officeTimeoutEntry.SetText(strconv.Itoa(sd.settings.GetOfficeTimeoutSec()))
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.darkThemeCheck.SetChecked(sd.settings.GetDarkTheme())

	current := sd.settings.GetLanguage()
	for i, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelectedIndex(i)
		}
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	showFolderOpen(sd.window, sd.outputDirEntry.Text, func(dir string) {
		sd.outputDirEntry.SetText(dir)
	})
}

// onSave handles saving the settings; invalid numbers keep their old values
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.outputDirEntry.Text; dir != "" {
		sd.settings.SetOutputDirectory(dir)
	}
	if v, err := strconv.Atoi(sd.dpiEntry.Text); err == nil {
		sd.settings.SetRenderDPI(v)
	}
	if v, err := strconv.Atoi(sd.qualityEntry.Text); err == nil {
		sd.settings.SetCompressQuality(v)
	}
	sd.settings.SetOfficeBinary(sd.officeBinaryEntry.Text)
	if v, err := strconv.Atoi(sd.officeTimeoutEntry.Text); err == nil {
		sd.settings.SetOfficeTimeoutSec(v)
	}
	if i := sd.languageSelect.SelectedIndex(); i >= 0 && i < len(sd.languageCodes) {
		sd.settings.SetLanguage(sd.languageCodes[i])
	}
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)
	sd.settings.SetDarkTheme(sd.darkThemeCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
