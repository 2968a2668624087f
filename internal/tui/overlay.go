package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const resetSGR = "\x1b[0m"

// withModal dims base and draws box centered over it.
func withModal(base, box string, width, height int) string {
	rows := strings.Split(base, "\n")
	for i, row := range rows {
		rows[i] = overlayDimStyle.Render(ansi.Strip(row))
	}

	boxRows := strings.Split(box, "\n")
	top := max((height-len(boxRows))/2, 1)
	col := max((width-lipgloss.Width(box))/2, 1)

	for i, fg := range boxRows {
		if r := top + i; r < len(rows) {
			rows[r] = splice(rows[r], fg, col)
		}
	}
	return strings.Join(rows, "\n")
}

// splice replaces the cells of bg starting at col with fg.
func splice(bg, fg string, col int) string {
	end := col + lipgloss.Width(fg)
	out := ansi.Truncate(bg, col, "") + resetSGR + fg + resetSGR
	if w := lipgloss.Width(bg); end < w {
		out += ansi.Cut(bg, end, w)
	}
	return out
}
