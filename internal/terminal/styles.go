package terminal

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorFg        = lipgloss.Color("#E4E4E4")
	colorMuted     = lipgloss.Color("#6C6C6C")
	colorBorder    = lipgloss.Color("#3A3A3A")
	colorHighlight = lipgloss.Color("#00A7E1")

	colorSuccess = lipgloss.Color("#5FD787")
	colorError   = lipgloss.Color("#FF5F5F")
	colorPending = lipgloss.Color("#6C6C6C")
)

var (
	containerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(colorPending)

	runningStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	logContentStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	logIndent = "    "
)

const (
	iconPending = "·"
	iconPass    = "✓"
	iconFail    = "✗"
)

func renderCursor(active bool) string {
	if active {
		return cursorStyle.Render(">")
	}
	return " "
}

func renderCheckbox(checked bool) string {
	if checked {
		return successStyle.Render("[x]")
	}
	return mutedStyle.Render("[ ]")
}

// running checks show the spinner frame
func renderStatusIcon(status CheckStatus, spinnerView string) string {
	switch status {
	case StatusRunning:
		return spinnerView
	case StatusPass:
		return successStyle.Render(iconPass)
	case StatusFail:
		return errorStyle.Render(iconFail)
	default:
		return pendingStyle.Render(iconPending)
	}
}

func renderCheckName(name string, status CheckStatus) string {
	switch status {
	case StatusPass:
		return successStyle.Render(name)
	case StatusFail:
		return errorStyle.Render(name)
	case StatusRunning:
		return runningStyle.Render(name)
	default:
		return mutedStyle.Render(name)
	}
}

func renderHint(text string) string {
	return hintStyle.Render(text)
}
