package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

// helpSections is built from the live bindings so the overlay cannot drift
// from what Update matches.
func helpSections() []helpSection {
	return []helpSection{
		{"Global", []key.Binding{globalKeys.Quit, globalKeys.Help, globalKeys.Tab,
			tabSwitchKeys.Tab1, tabSwitchKeys.Tab2, tabSwitchKeys.Tab3, tabSwitchKeys.Tab4}},
		{"Batch", []key.Binding{batchKeys.Start, batchKeys.Stop}},
		{"Apps", []key.Binding{appListKeys.Up, appListKeys.Analyze}},
		{"Assistant", []key.Binding{assistantKeys.Edit, assistantKeys.Quick, assistantKeys.Generate, assistantKeys.Done}},
		{"Settings", []key.Binding{settingsKeys.Up, settingsKeys.Enter, settingsKeys.Reveal}},
		{"Feed / Runs", []key.Binding{
			key.NewBinding(key.WithHelp("PgUp/PgDn", "scroll")),
			key.NewBinding(key.WithHelp("Enter", "open saved run")),
			key.NewBinding(key.WithHelp("Esc", "back to list")),
		}},
	}
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	boxWidth := max(min(60, width-4), 30)

	keyCol := lipgloss.NewStyle().Width(14).Bold(true).Foreground(colorWhite)
	descCol := lipgloss.NewStyle().Foreground(colorDim)
	sectionTitle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	lines := []string{overlayTitleStyle.Render("Keyboard Shortcuts")}
	for _, sec := range helpSections() {
		lines = append(lines, "", sectionTitle.Render(sec.title))
		for _, b := range sec.bindings {
			h := b.Help()
			lines = append(lines, "  "+keyCol.Render(h.Key)+descCol.Render(h.Desc))
		}
	}
	lines = append(lines, "", descCol.Render("Press Esc or Ctrl+h to close"))

	return overlayStyle.Width(boxWidth).Render(strings.Join(lines, "\n"))
}
