package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/filetype"
	"github.com/ytget/multitool/internal/jobs"
	"github.com/ytget/multitool/internal/model"
	"github.com/ytget/multitool/internal/office"
	"github.com/ytget/multitool/internal/photo"
	"github.com/ytget/multitool/internal/platform"
)

// Default output name suffixes
const (
	CompressedSuffix  = "_compressed"
	LockedSuffix      = "_locked"
	PassportFileName  = "passport_photos"
	DefaultPDFName    = "images"
	PassportExtension = ".jpg"
)

// passportExtensions lists the passport outputs; JPEG comes first as the default
var passportExtensions = append(append([]string{}, filetype.JPEGExtensions...), filetype.PDFExtensions...)

// submit starts fn as a job and reports failures to start
func (ui *RootUI) submit(kind model.JobKind, inputs []string, fn jobs.WorkFunc) {
	job, err := ui.jobSvc.Submit(kind, inputs, fn)
	if err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("job rejected")
		ui.showError(err)
		return
	}
	log.Info().Str("job", job.ID).Str("kind", string(kind)).Strs("inputs", inputs).Msg("job submitted")
}

// chooseInput opens a file picker and remembers its directory
func (ui *RootUI) chooseInput(exts []string, onChosen func(string)) {
	showOpenFile(ui.window, exts, ui.lastDir, func(path string) {
		ui.lastDir = filepath.Dir(path)
		onChosen(path)
	})
}

// chooseOutput asks where to save, starting in the output directory; inputs
// may not be chosen as the output
func (ui *RootUI) chooseOutput(titleKey string, exts []string, fileName string, inputs []string, onChosen func(string)) {
	showSaveFile(ui.window, ui.localization, ui.localization.GetText(titleKey), exts,
		ui.settings.GetOutputDirectory(), fileName, inputs, onChosen)
}

// officeConverter builds a converter from the current settings
func (ui *RootUI) officeConverter() *office.Converter {
	timeout := time.Duration(ui.settings.GetOfficeTimeoutSec()) * time.Second
	return office.NewConverter(ui.settings.GetOfficeBinary(), timeout)
}

// onPDFToImages renders a PDF into one PNG per page
func (ui *RootUI) onPDFToImages() {
	ui.chooseInput(filetype.PDFExtensions, func(in string) {
		showFolderOpen(ui.window, ui.settings.GetOutputDirectory(), func(outDir string) {
			ui.submit(model.JobKindPDFToImages, []string{in},
				jobs.PDFToImages(in, outDir, ui.settings.GetRenderDPI()))
		})
	})
}

// onImagesToPDF joins an ordered list of images into one PDF
func (ui *RootUI) onImagesToPDF() {
	showImageListDialog(ui.window, ui.localization, filetype.ImageExtensions, ui.lastDir, func(images []string) {
		ui.lastDir = filepath.Dir(images[0])
		name := DefaultPDFName + filetype.PDFExtensions[0]
		if len(images) == 1 {
			name = platform.SuggestOutputName(images[0], "", filetype.PDFExtensions[0])
		}
		ui.chooseOutput(KeySavePDF, filetype.PDFExtensions, name, images, func(out string) {
			ui.submit(model.JobKindImagesToPDF, images, jobs.ImagesToPDF(images, out))
		})
	})
}

// onWordToPDF converts a document through LibreOffice
func (ui *RootUI) onWordToPDF() {
	conv := ui.officeConverter()
	if !conv.Available() {
		ui.showError(office.ErrOfficeNotFound)
		return
	}
	ui.chooseInput(filetype.WordExtensions, func(in string) {
		name := platform.SuggestOutputName(in, "", filetype.PDFExtensions[0])
		ui.chooseOutput(KeySavePDF, filetype.PDFExtensions, name, []string{in}, func(out string) {
			ui.submit(model.JobKindWordToPDF, []string{in}, jobs.WordToPDF(conv, in, out))
		})
	})
}

// onCompressImage re-encodes an image as a low quality JPEG
func (ui *RootUI) onCompressImage() {
	ui.chooseInput(filetype.ImageExtensions, func(in string) {
		name := platform.SuggestOutputName(in, CompressedSuffix, filetype.JPEGExtensions[0])
		ui.chooseOutput(KeySaveCompressed, filetype.JPEGExtensions, name, []string{in}, func(out string) {
			ui.submit(model.JobKindCompressImage, []string{in},
				jobs.CompressImage(in, out, ui.settings.GetCompressQuality()))
		})
	})
}

// onLockPDF encrypts a PDF with a password
func (ui *RootUI) onLockPDF() {
	ui.chooseInput(filetype.PDFExtensions, func(in string) {
		showPasswordDialog(ui.window, ui.localization, func(password string) {
			name := platform.SuggestOutputName(in, LockedSuffix, filetype.PDFExtensions[0])
			ui.chooseOutput(KeySaveEncrypted, filetype.PDFExtensions, name, []string{in}, func(out string) {
				ui.submit(model.JobKindLockPDF, []string{in}, jobs.LockPDF(in, out, password))
			})
		})
	})
}

// onPassportPhotos crops a photo and tiles it onto printable sheets
func (ui *RootUI) onPassportPhotos() {
	ui.chooseInput(filetype.ImageExtensions, func(in string) {
		ui.showNotification(ui.localization.GetText(KeyCropHint), true)

		// Large photos take a moment to decode
		go func() {
			img, err := imaging.Open(in, imaging.AutoOrientation(true))
			fyne.Do(func() {
				if err != nil {
					ui.showError(fmt.Errorf("failed to decode image: %w", err))
					return
				}
				ui.hideNotification()
				showCropDialog(ui.window, ui.localization, img, func(crop model.CropRect) {
					showPassportOptionsDialog(ui.window, ui.localization, func(count int, size model.PhotoSize) {
						ui.chooseOutput(KeySavePassport, passportExtensions, PassportFileName+PassportExtension, []string{in}, func(out string) {
							ui.submit(model.JobKindPassportPhotos, []string{in}, jobs.PassportPhotos(photo.PassportRequest{
								Input:  in,
								Output: out,
								Crop:   crop,
								Count:  count,
								Size:   size,
							}))
						})
					})
				})
			})
		}()
	})
}
