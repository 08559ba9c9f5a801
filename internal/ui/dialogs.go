package ui

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/multitool/internal/model"
	"github.com/ytget/multitool/internal/platform"
)

// listableDir returns dir as a dialog location, nil when it cannot be listed
func listableDir(dir string) fyne.ListableURI {
	if dir == "" {
		return nil
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return lister
}

// showOpenFile asks for one existing file with one of exts
func showOpenFile(win fyne.Window, exts []string, location string, onChosen func(path string)) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			log.Error().Err(err).Msg("open dialog failed")
			dialog.ShowError(err, win)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		onChosen(path)
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter(exts))
	if l := listableDir(location); l != nil {
		d.SetLocation(l)
	}
	d.Show()
}

// showSaveFile asks for an output folder and then a file name. Nothing is
// created on disk here; the job writes the file. An output that would
// replace one of inputs is refused.
func showSaveFile(win fyne.Window, loc *Localization, title string, exts []string, location, fileName string, inputs []string, onChosen func(path string)) {
	showFolderOpen(win, location, func(dir string) {
		showFileNameDialog(win, loc, title, dir, fileName, exts, inputs, onChosen)
	})
}

// showFileNameDialog asks for the output name inside dir and confirms
// replacing an existing file
func showFileNameDialog(win fyne.Window, loc *Localization, title, dir, fileName string, exts, inputs []string, onChosen func(path string)) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(fileName)
	nameEntry.Validator = func(s string) error {
		_, err := outputPath(dir, s, exts, inputs)
		return err
	}

	nameItem := widget.NewFormItem(loc.GetText(KeyFileName), nameEntry)
	nameItem.HintText = dir
	items := []*widget.FormItem{nameItem}

	d := dialog.NewForm(title, loc.GetText(KeySave), loc.GetText(KeyCancel), items, func(ok bool) {
		if !ok {
			return
		}
		path, err := outputPath(dir, nameEntry.Text, exts, inputs)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if _, err := os.Stat(path); err != nil {
			onChosen(path)
			return
		}
		msg := fmt.Sprintf(loc.GetText(KeyReplaceFile), filepath.Base(path))
		dialog.ShowConfirm(title, msg, func(replace bool) {
			if replace {
				onChosen(path)
			}
		}, win)
	}, win)
	d.Resize(fyne.NewSize(FileNameDialogWidth, d.MinSize().Height))
	d.Show()
	win.Canvas().Focus(nameEntry)
}

// outputPath joins a typed file name onto dir, adding the first of exts
// when the name has none of them
func outputPath(dir, name string, exts, inputs []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("file name must not be empty")
	}
	if name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", errors.New("file name must not contain a folder")
	}
	path := platform.EnsureExtension(filepath.Join(dir, name), exts...)
	if err := platform.CheckOutputPath(path, inputs...); err != nil {
		return "", err
	}
	return path, nil
}

// showFolderOpen asks for an output folder
func showFolderOpen(win fyne.Window, location string, onChosen func(dir string)) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if uri == nil {
			return
		}
		onChosen(uri.Path())
	}, win)
	if l := listableDir(location); l != nil {
		d.SetLocation(l)
	}
	d.Show()
}

// validatePassword rejects empty passwords; spaces are accepted
func validatePassword(s string) error {
	if s == "" {
		return errors.New("password must not be empty")
	}
	return nil
}

// showPasswordDialog asks for the PDF password
func showPasswordDialog(win fyne.Window, loc *Localization, onOK func(password string)) {
	entry := widget.NewPasswordEntry()
	entry.Validator = validatePassword

	items := []*widget.FormItem{
		widget.NewFormItem(loc.GetText(KeyPassword), entry),
	}
	d := dialog.NewForm(loc.GetText(KeyEnterPassword), "OK", loc.GetText(KeyCancel), items, func(ok bool) {
		if ok {
			onOK(entry.Text)
		}
	}, win)
	d.Resize(fyne.NewSize(360, d.MinSize().Height))
	d.Show()
	win.Canvas().Focus(entry)
}

// parsePhotoCount parses a passport photo count within the allowed range
func parsePhotoCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("not a number")
	}
	if n < model.MinPhotoCount || n > model.MaxPhotoCount {
		return 0, errors.New("enter a number from 1 to 50")
	}
	return n, nil
}

// showPassportOptionsDialog asks for the photo count and print size
func showPassportOptionsDialog(win fyne.Window, loc *Localization, onOK func(count int, size model.PhotoSize)) {
	countEntry := widget.NewEntry()
	countEntry.SetText(strconv.Itoa(model.MinPhotoCount))
	countEntry.Validator = func(s string) error {
		_, err := parsePhotoCount(s)
		return err
	}

	sizeSelect := widget.NewSelect(model.PhotoSizeNames(), nil)
	sizeSelect.SetSelectedIndex(0)

	countItem := widget.NewFormItem(loc.GetText(KeyNumberOfPhotos), countEntry)
	countItem.HintText = loc.GetText(KeyCountRange)
	items := []*widget.FormItem{
		countItem,
		widget.NewFormItem(loc.GetText(KeyPhotoSize), sizeSelect),
	}

	d := dialog.NewForm(loc.GetText(KeyPassportOptions), loc.GetText(KeyNext), loc.GetText(KeyCancel), items, func(ok bool) {
		if !ok {
			return
		}
		count, err := parsePhotoCount(countEntry.Text)
		if err != nil {
			return
		}
		size, err := model.PhotoSizeByName(sizeSelect.Selected)
		if err != nil {
			return
		}
		onOK(count, size)
	}, win)
	d.Resize(fyne.NewSize(360, d.MinSize().Height))
	d.Show()
}

// showCropDialog shows the image and returns the dragged selection in image pixels
func showCropDialog(win fyne.Window, loc *Localization, img image.Image, onOK func(model.CropRect)) {
	selector := NewCropSelector(img)
	hint := widget.NewLabel(loc.GetText(KeyCropHint))
	hint.Wrapping = fyne.TextWrapWord
	status := widget.NewLabel(cropStatusText(loc, model.CropRect{}))
	selector.OnChanged = func(r model.CropRect) {
		status.SetText(cropStatusText(loc, r))
	}

	content := container.NewBorder(hint, status, nil, nil, selector)
	d := dialog.NewCustomConfirm(loc.GetText(KeyCropImage), loc.GetText(KeyNext), loc.GetText(KeyCancel), content, func(ok bool) {
		if ok {
			onOK(selector.Selection())
		}
	}, win)
	d.Resize(fyne.NewSize(CropDialogWidth, CropDialogHeight))
	d.Show()
}

// cropStatusText describes the current crop selection
func cropStatusText(loc *Localization, r model.CropRect) string {
	if r.Empty() {
		return loc.GetText(KeyCropWholeImage)
	}
	return fmt.Sprintf(loc.GetText(KeyCropSelection), r.W, r.H)
}

// imageCountText describes how many images are listed
func imageCountText(loc *Localization, n int) string {
	return fmt.Sprintf(loc.GetText(KeyImageCount), n)
}

// ImageList keeps the ordered selection for the images to PDF action
type ImageList struct {
	paths    []string
	selected int
	list     *widget.List

	OnChanged func()
}

// NewImageList creates an empty list
func NewImageList() *ImageList {
	l := &ImageList{selected: -1}
	l.list = widget.NewList(
		func() int { return len(l.paths) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(l.paths) {
				obj.(*widget.Label).SetText(strconv.Itoa(id+1) + ". " + filepath.Base(l.paths[id]))
			}
		},
	)
	l.list.OnSelected = func(id widget.ListItemID) { l.selected = id }
	l.list.OnUnselected = func(widget.ListItemID) { l.selected = -1 }
	return l
}

// Add appends paths, skipping ones already listed
func (l *ImageList) Add(paths ...string) {
	for _, p := range paths {
		if p != "" && !slices.Contains(l.paths, p) {
			l.paths = append(l.paths, p)
		}
	}
	l.changed()
}

// Remove drops the entry at i
func (l *ImageList) Remove(i int) {
	if i < 0 || i >= len(l.paths) {
		return
	}
	l.paths = slices.Delete(l.paths, i, i+1)
	l.setSelected(-1)
	l.changed()
}

// MoveUp swaps entry i with the one before it and returns its new index
func (l *ImageList) MoveUp(i int) int {
	if i <= 0 || i >= len(l.paths) {
		return i
	}
	l.paths[i-1], l.paths[i] = l.paths[i], l.paths[i-1]
	l.setSelected(i - 1)
	l.changed()
	return i - 1
}

// MoveDown swaps entry i with the one after it and returns its new index
func (l *ImageList) MoveDown(i int) int {
	if i < 0 || i >= len(l.paths)-1 {
		return i
	}
	l.paths[i+1], l.paths[i] = l.paths[i], l.paths[i+1]
	l.setSelected(i + 1)
	l.changed()
	return i + 1
}

// Paths returns the list in its current order
func (l *ImageList) Paths() []string {
	return append([]string(nil), l.paths...)
}

// Len returns the number of listed images
func (l *ImageList) Len() int {
	return len(l.paths)
}

// Selected returns the selected index or -1
func (l *ImageList) Selected() int {
	return l.selected
}

func (l *ImageList) setSelected(i int) {
	if i < 0 {
		l.list.UnselectAll()
		l.selected = -1
		return
	}
	l.list.Select(i)
	l.selected = i
}

func (l *ImageList) changed() {
	l.list.Refresh()
	if l.OnChanged != nil {
		l.OnChanged()
	}
}

// showImageListDialog collects an ordered list of images
func showImageListDialog(win fyne.Window, loc *Localization, exts []string, location string, onOK func([]string)) {
	images := NewImageList()

	addBtn := widget.NewButton(loc.GetText(KeyAdd), func() {
		showOpenFile(win, exts, location, func(path string) {
			images.Add(path)
			location = filepath.Dir(path)
		})
	})
	removeBtn := widget.NewButton(loc.GetText(KeyRemove), func() { images.Remove(images.Selected()) })
	upBtn := widget.NewButton(loc.GetText(KeyMoveUp), func() { images.MoveUp(images.Selected()) })
	downBtn := widget.NewButton(loc.GetText(KeyMoveDown), func() { images.MoveDown(images.Selected()) })

	count := widget.NewLabel(imageCountText(loc, 0))
	images.OnChanged = func() {
		count.SetText(imageCountText(loc, images.Len()))
	}

	buttons := container.NewVBox(addBtn, removeBtn, upBtn, downBtn)
	content := container.NewBorder(nil, count, nil, buttons, images.list)

	d := dialog.NewCustomConfirm(loc.GetText(KeySelectImages), loc.GetText(KeyNext), loc.GetText(KeyCancel), content, func(ok bool) {
		if !ok {
			return
		}
		paths := images.Paths()
		if len(paths) == 0 {
			dialog.ShowInformation(loc.GetText(KeySelectImages), loc.GetText(KeyNoImagesSelected), win)
			return
		}
		onOK(paths)
	}, win)
	d.Resize(fyne.NewSize(ImageListDialogWidth, ImageListDialogHeight))
	d.Show()

	// Start with the picker open, like a plain multi-file dialog
	addBtn.OnTapped()
}
