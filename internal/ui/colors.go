// Package ui provides the terminal rendering primitives shared by the
// dashboard and plain-text monitor views: threshold-colored sparklines,
// usage meters, and the semantic color palette.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors as ANSI codes for broad terminal compatibility.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

var colorsEnabled = true

// DisableColors switches all rendering to monochrome. Used when output is
// not a terminal or color is configured off.
func DisableColors() {
	colorsEnabled = false
}

// EnableColors restores colored rendering.
func EnableColors() {
	colorsEnabled = true
}

// ColorsEnabled reports whether colored rendering is active.
func ColorsEnabled() bool {
	return colorsEnabled
}

// ThresholdColor maps a usage percentage to its status color:
// green below 60, yellow from 60 to 80, red above 80.
func ThresholdColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 80:
		return ColorError
	case percent >= 60:
		return ColorWarning
	default:
		return ColorSuccess
	}
}

func colorize(s string, color lipgloss.Color) string {
	if !colorsEnabled {
		return s
	}
	return lipgloss.NewStyle().Foreground(color).Render(s)
}
