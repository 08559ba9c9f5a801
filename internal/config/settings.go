package config

import (
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/multitool/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir          = "output_directory"
	KeyRenderDPI          = "render_dpi"
	KeyCompressQuality    = "compress_quality"
	KeyOfficeBinary       = "office_binary"
	KeyOfficeTimeoutSec   = "office_timeout_sec"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyDarkTheme          = "dark_theme"
)

// Default values
const (
	DefaultRenderDPI          = 200
	DefaultCompressQuality    = 30
	DefaultOfficeBinary       = "soffice"
	DefaultOfficeTimeoutSec   = 180
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	DefaultDarkTheme          = true
	DefaultOutputSubdir       = "Multi-Utility"
)

// Limits for numeric settings
const (
	MinRenderDPI        = 72
	MaxRenderDPI        = 600
	MinCompressQuality  = 1
	MaxCompressQuality  = 100
	MinOfficeTimeoutSec = 10
	MaxOfficeTimeoutSec = 3600
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
	env Env
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// WithEnv attaches environment overrides to the settings
func (s *Settings) WithEnv(env Env) *Settings {
	s.env = env
	return s
}

// GetOutputDirectory returns the directory offered first in save dialogs
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDocumentsDir()
		if err != nil {
			defaultDir = filepath.Join(s.app.Storage().RootURI().Path(), "output")
		} else {
			defaultDir = filepath.Join(defaultDir, DefaultOutputSubdir)
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetRenderDPI returns the resolution used to rasterize PDF pages
func (s *Settings) GetRenderDPI() int {
	value := s.app.Preferences().Int(KeyRenderDPI)
	if value <= 0 {
		s.SetRenderDPI(DefaultRenderDPI)
		return DefaultRenderDPI
	}
	return value
}

// SetRenderDPI sets the rasterization resolution
func (s *Settings) SetRenderDPI(dpi int) {
	s.app.Preferences().SetInt(KeyRenderDPI, clamp(dpi, MinRenderDPI, MaxRenderDPI))
}

// GetCompressQuality returns the JPEG quality used by image compression
func (s *Settings) GetCompressQuality() int {
	value := s.app.Preferences().Int(KeyCompressQuality)
	if value <= 0 {
		s.SetCompressQuality(DefaultCompressQuality)
		return DefaultCompressQuality
	}
	return value
}

// SetCompressQuality sets the JPEG quality used by image compression
func (s *Settings) SetCompressQuality(quality int) {
	s.app.Preferences().SetInt(KeyCompressQuality, clamp(quality, MinCompressQuality, MaxCompressQuality))
}

// GetOfficeBinary returns the LibreOffice executable; the environment wins over preferences
func (s *Settings) GetOfficeBinary() string {
	if s.env.OfficeBinary != "" {
		return s.env.OfficeBinary
	}
	bin := s.app.Preferences().String(KeyOfficeBinary)
	if bin == "" {
		return DefaultOfficeBinary
	}
	return bin
}

// SetOfficeBinary sets the LibreOffice executable; empty restores the default
func (s *Settings) SetOfficeBinary(bin string) {
	if bin == "" {
		bin = DefaultOfficeBinary
	}
	s.app.Preferences().SetString(KeyOfficeBinary, bin)
}

// GetOfficeTimeoutSec returns the Word to PDF timeout in seconds
func (s *Settings) GetOfficeTimeoutSec() int {
	value := s.app.Preferences().Int(KeyOfficeTimeoutSec)
	if value <= 0 {
		s.SetOfficeTimeoutSec(DefaultOfficeTimeoutSec)
		return DefaultOfficeTimeoutSec
	}
	return value
}

// SetOfficeTimeoutSec sets the Word to PDF timeout in seconds
func (s *Settings) SetOfficeTimeoutSec(sec int) {
	s.app.Preferences().SetInt(KeyOfficeTimeoutSec, clamp(sec, MinOfficeTimeoutSec, MaxOfficeTimeoutSec))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal finished outputs in the file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal finished outputs
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetDarkTheme returns whether the dark palette is used
func (s *Settings) GetDarkTheme() bool {
	return s.app.Preferences().BoolWithFallback(KeyDarkTheme, DefaultDarkTheme)
}

// SetDarkTheme sets whether the dark palette is used
func (s *Settings) SetDarkTheme(dark bool) {
	s.app.Preferences().SetBool(KeyDarkTheme, dark)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
