package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Dark palette of the main window
var (
	PaletteWindow    = color.NRGBA{R: 53, G: 53, B: 53, A: 255}
	PaletteBase      = color.NRGBA{R: 25, G: 25, B: 25, A: 255}
	PaletteHighlight = color.NRGBA{R: 199, G: 99, B: 255, A: 255}
	PaletteText      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	PaletteButton    = color.NRGBA{R: 70, G: 70, B: 70, A: 255}
	PaletteBright    = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
)

// AppTheme is a compact theme; when dark is set it forces the dark palette
// regardless of the OS variant
type AppTheme struct {
	dark bool
}

// NewAppTheme creates the application theme
func NewAppTheme(dark bool) fyne.Theme {
	return &AppTheme{dark: dark}
}

// Color returns theme colors
func (t *AppTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.NRGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	}

	if !t.dark {
		return theme.DefaultTheme().Color(name, variant)
	}

	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return PaletteWindow
	case theme.ColorNameInputBackground, theme.ColorNameHeaderBackground:
		return PaletteBase
	case theme.ColorNameButton:
		return PaletteButton
	case theme.ColorNameForeground:
		return PaletteText
	case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameSelection, theme.ColorNameHyperlink:
		return PaletteHighlight
	case theme.ColorNameForegroundOnPrimary:
		return color.Black
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}
	return theme.DefaultTheme().Size(name)
}
