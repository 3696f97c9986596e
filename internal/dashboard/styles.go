package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/patchtools/patchmon/internal/ui"
)

// Dashboard palette. ANSI codes so the dashboard degrades gracefully on
// 16-color terminals.
const (
	ColorBorder = ui.ColorMuted
	ColorAccent = ui.ColorInfo

	ColorTextPrimary   = ui.ColorPrimary
	ColorTextSecondary = ui.ColorSecondary
	ColorTextMuted     = ui.ColorMuted
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	BestStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSuccess).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)
)

// SectionHeader renders a section's top border with the title inset.
// Format: ╭─ Title ──────────────────────╮
func SectionHeader(title string, width int) string {
	if width < 10 {
		width = 10
	}

	leftWidth := 3 + lipgloss.Width(title) + 1
	fillWidth := width - leftWidth - 1
	if fillWidth < 1 {
		fillWidth = 1
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	return borderStyle.Render("╭─ ") +
		TitleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat("─", fillWidth)+"╮")
}

// SectionFooter renders a section's bottom border.
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	return lipgloss.NewStyle().Foreground(ColorBorder).
		Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionLine renders a content line between side borders, padded to width.
func SectionLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	padding := width - 4 - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content +
		strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}
