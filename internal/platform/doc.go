package platform

// Package platform contains OS integration glue: filesystem helpers, output
// file naming, and opening or revealing files with the desktop environment.
