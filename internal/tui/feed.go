package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/automat-io/automat/internal/models"
)

// FeedView shows the live deployment log. It follows the tail unless the
// operator has scrolled up.
type FeedView struct {
	viewport viewport.Model
	lines    int
}

// NewFeedView creates an empty feed.
func NewFeedView() *FeedView {
	return &FeedView{viewport: viewport.New(80, 24)}
}

// SetSize updates dimensions.
func (f *FeedView) SetSize(width, height int) {
	f.viewport.Width = width
	f.viewport.Height = height
}

// SetEntries re-renders the feed.
func (f *FeedView) SetEntries(entries []models.LogEntry) {
	if len(entries) == f.lines {
		return
	}
	follow := f.viewport.AtBottom() || f.lines == 0
	f.lines = len(entries)

	rendered := make([]string, len(entries))
	for i, e := range entries {
		rendered[i] = formatEntry(e)
	}
	f.viewport.SetContent(strings.Join(rendered, "\n"))
	if follow {
		f.viewport.GotoBottom()
	}
}

// ScrollUp scrolls the feed up.
func (f *FeedView) ScrollUp(n int) { f.viewport.LineUp(n) }

// ScrollDown scrolls the feed down.
func (f *FeedView) ScrollDown(n int) { f.viewport.LineDown(n) }

// PageUp scrolls half a page up.
func (f *FeedView) PageUp() { f.viewport.HalfViewUp() }

// PageDown scrolls half a page down.
func (f *FeedView) PageDown() { f.viewport.HalfViewDown() }

// View renders the feed.
func (f *FeedView) View() string {
	if f.lines == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Render("Waiting for log output...")
	}
	return f.viewport.View()
}

func formatEntry(e models.LogEntry) string {
	level := levelStyle(e.Level).Width(8).Render(string(e.Level))
	return timestampStyle.Render("["+e.Timestamp+"]") + " " + level + e.Message
}
