package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	l := newLayout(121, 40, 0.6)
	assert.Equal(t, 72, l.left)
	assert.Equal(t, 48, l.right)
	assert.Equal(t, 38, l.height)
	assert.Equal(t, 70, l.leftInner())
	assert.True(t, l.onDivider(73))
	assert.False(t, l.onDivider(75))

	narrow := newLayout(15, 3, 0.1)
	assert.Equal(t, minPanelWidth, narrow.left)
	assert.Equal(t, minPanelWidth, narrow.right)
	assert.Equal(t, 1, narrow.innerHeight())
}

func TestSplitAtClamps(t *testing.T) {
	assert.Equal(t, minSplit, splitAt(0, 100))
	assert.Equal(t, 0.5, splitAt(50, 100))
	assert.Equal(t, maxSplit, splitAt(99, 100))
}

func TestClip(t *testing.T) {
	got := clip("abcdef\nxy\nz", 3, 2)
	assert.Equal(t, "abc\nxy", got)
}

func TestSplice(t *testing.T) {
	assert.Equal(t, "ab"+resetSGR+"XY"+resetSGR+"ef", splice("abcdef", "XY", 2))
	assert.Equal(t, "ab"+resetSGR+"XYZW"+resetSGR, splice("abc", "XYZW", 2))
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, m.showHelp)

	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "start batch")

	m, _ = press(t, m, "esc")
	assert.False(t, m.showHelp)
}
