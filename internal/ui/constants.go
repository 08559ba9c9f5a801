package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconError    = "❌"
	IconStop     = "⏹"
	IconPending  = "⏳"
	IconRunning  = "▶"
)

// Text fragments
const (
	ProgressLabelFormat = "%d%%"
	MiddleDotSeparator  = " · "
)

// Window sizing
const (
	WindowWidth  float32 = 560
	WindowHeight float32 = 600
)

// Layout sizing (JobRow / lists)
const (
	StatusLabelWidth  float32 = 96
	PercentLabelWidth float32 = 48
)

// Dialog sizing
const (
	FileNameDialogWidth   float32 = 420
	ImageListDialogWidth  float32 = 480
	ImageListDialogHeight float32 = 360
	CropDialogWidth       float32 = 640
	CropDialogHeight      float32 = 520
	SettingsDialogWidth   float32 = 500
	SettingsDialogHeight  float32 = 480
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Notification bar auto-hide delay for finished actions
const NotificationAutoHide = 8 * time.Second
