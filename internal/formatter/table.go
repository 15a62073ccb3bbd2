package formatter

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

const columnGap = "  "

// RenderTable renders KEY/VALUE rows with the key column padded to its widest
// cell. Widths are measured in terminal cells so wide runes line up.
func RenderTable(rows [][]string, noColor bool) string {
	keyWidth := runewidth.StringWidth("KEY")
	for _, row := range rows {
		if len(row) > 0 {
			if w := runewidth.StringWidth(row[0]); w > keyWidth {
				keyWidth = w
			}
		}
	}

	var b strings.Builder
	header := padRight("KEY", keyWidth) + columnGap + "VALUE"
	if !noColor {
		header = headerStyle.Render(header)
	}
	b.WriteString(header)
	b.WriteByte('\n')
	for _, row := range rows {
		key, value := "", ""
		if len(row) > 0 {
			key = row[0]
		}
		if len(row) > 1 {
			value = row[1]
		}
		key = padRight(key, keyWidth)
		if !noColor {
			key = keyStyle.Render(key)
		}
		b.WriteString(key)
		b.WriteString(columnGap)
		b.WriteString(value)
		b.WriteByte('\n')
	}
	return b.String()
}

func padRight(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
