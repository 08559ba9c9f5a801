// Package ui contains the Fyne-based desktop user interface. It offers one
// button per conversion action, collects inputs through native dialogs, runs
// the work on the jobs service and renders job rows, notifications and
// settings. All UI strings are localized via Localization.
package ui
