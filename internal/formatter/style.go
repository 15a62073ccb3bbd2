package formatter

import (
	"os"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"
)

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// ErrorText prefixes msg with "Error:" and colors it unless noColor is set.
func ErrorText(msg string, noColor bool) string {
	text := "Error: " + msg
	if noColor {
		return text
	}
	return errorStyle.Render(text)
}
