package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	minPanelWidth = 10
	minSplit      = 0.3
	maxSplit      = 0.8
)

// layout is the space between the header and the status bar, split into
// two bordered panels with a one-cell divider.
type layout struct {
	left   int // outer widths, borders included
	right  int
	height int
}

func newLayout(width, height int, split float64) layout {
	usable := width - 1
	left := max(int(float64(usable)*split), minPanelWidth)
	return layout{
		left:   left,
		right:  max(usable-left, minPanelWidth),
		height: max(height-2, 1),
	}
}

func (l layout) divider() int     { return l.left }
func (l layout) leftInner() int   { return max(l.left-2, 1) }
func (l layout) rightInner() int  { return max(l.right-2, 1) }
func (l layout) innerHeight() int { return max(l.height-2, 1) }

// onDivider allows one cell of slack either side for dragging.
func (l layout) onDivider(x int) bool {
	return x >= l.left-1 && x <= l.left+1
}

// splitAt converts a mouse column into a clamped split ratio.
func splitAt(x, width int) float64 {
	return max(minSplit, min(float64(x)/float64(width), maxSplit))
}

func (l layout) render(left, right string, focused int) string {
	leftStyle, rightStyle := unfocusedBorderStyle, focusedBorderStyle
	if focused == 0 {
		leftStyle, rightStyle = rightStyle, leftStyle
	}

	h := l.innerHeight()
	lp := leftStyle.Width(l.leftInner()).Height(h).Render(clip(left, l.leftInner(), h))
	rp := rightStyle.Width(l.rightInner()).Height(h).Render(clip(right, l.rightInner(), h))

	bar := strings.TrimSuffix(strings.Repeat("│\n", lipgloss.Height(lp)), "\n")
	bar = lipgloss.NewStyle().Foreground(colorDim).Render(bar)

	return lipgloss.JoinHorizontal(lipgloss.Top, lp, bar, rp)
}

// clip cuts content to height lines of at most width cells.
func clip(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return strings.Join(lines, "\n")
}
