package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/automat-io/automat/internal/batch"
)

// confirmMode values.
const (
	confirmNone = 0
	confirmQuit = 1
	confirmStop = 2
)

func renderStatusBar(m *Model, width int) string {
	switch m.confirmMode {
	case confirmQuit:
		return renderConfirmBar("Batch running. Quit and interrupt it? (y/n)", width)
	case confirmStop:
		return renderConfirmBar("Interrupt the batch run? (y/n)", width)
	}

	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	if m.showSaved {
		return renderSavedBar(width)
	}

	left := " " + getKeyHints(m)

	right := lipgloss.NewStyle().Foreground(colorYellow).Render("AI key missing") + " "
	if m.assistant != nil && m.assistant.HasCredential() {
		right = lipgloss.NewStyle().Foreground(colorGreen).Render("AI ready") + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.showHelp {
		return keyHint("Esc", "close")
	}

	base := keyHint("Ctrl+q", "quit") + "  " + keyHint("Ctrl+h", "help") + "  " + keyHint("Tab", "switch")
	running := m.state.Phase == batch.PhaseRunning

	if m.focusedPanel == 1 {
		if m.rightTab == tabRuns {
			return base + "  " + keyHint("Enter", "view") + "  " + keyHint("Esc", "back")
		}
		return base + "  " + keyHint("PgUp/PgDn", "scroll")
	}

	switch m.leftTab {
	case tabDashboard:
		if running {
			return base + "  " + keyHint("S", "stop")
		}
		return base + "  " + keyHint("s", "start batch")
	case tabApps:
		hints := base + "  " + keyHint("j/k", "navigate") + "  " + keyHint("a", "analyze")
		if running {
			return hints + "  " + keyHint("S", "stop")
		}
		return hints + "  " + keyHint("s", "start batch")
	case tabAssistant:
		if m.scriptForm.IsEditing() {
			return keyHint("Ctrl+s", "generate") + "  " + keyHint("Esc", "done")
		}
		return base + "  " + keyHint("Enter", "describe") + "  " + keyHint("p", "quick prompt") + "  " + keyHint("g", "generate")
	case tabSettings:
		if m.settingsForm.IsEditing() {
			return keyHint("Enter", "save") + "  " + keyHint("Esc", "cancel")
		}
		return base + "  " + keyHint("j/k", "navigate") + "  " + keyHint("Enter", "edit") + "  " + keyHint("v", "show secret")
	}
	return base
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(" " + msg)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}

func renderSavedBar(width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorGreen).Render("Saved"))
}
