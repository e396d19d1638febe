package ui

import "fmt"

// ANSI256 color codes.
const (
	colorID      = 74  // blue, canonical ids
	colorName    = 114 // green, display names
	colorMuted   = 245 // medium gray, secondary detail
	colorWarning = 179 // amber, private/filtered markers
)

var noColor bool

// RenderID returns a canonical id in the id (blue) color.
func RenderID(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorID, s)
}

// RenderName returns a display name in the name (green) color.
func RenderName(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorName, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// RenderWarning returns s in the warning (amber) color.
func RenderWarning(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorWarning, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
