package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/automat-io/automat/internal/batch"
)

var (
	leftTabNames  = []string{"Dashboard", "Apps", "Assistant", "Settings"}
	rightTabNames = []string{"Feed", "Runs"}
)

func renderHeader(s batch.State, leftTab, rightTab int, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorBlue).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("Automat")

	leftTabs := renderTabs(leftTabNames, leftTab)
	rightTabs := renderTabs(rightTabNames, rightTab)
	badge := renderRunBadge(s)

	left := fmt.Sprintf(" %s %s  %s", dot, name, leftTabs)
	right := fmt.Sprintf("%s  %s ", rightTabs, badge)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderTabs(tabs []string, active int) string {
	var parts []string
	for i, tab := range tabs {
		if i == active {
			parts = append(parts, activeTabStyle.Render(tab))
		} else {
			parts = append(parts, inactiveTabStyle.Render(tab))
		}
	}
	return strings.Join(parts, tabSepStyle.Render(" | "))
}

func renderRunBadge(s batch.State) string {
	if s.Phase == batch.PhaseRunning {
		return badgeRunningStyle.Render(fmt.Sprintf("● Running %d%%", s.Counter))
	}
	return badgeIdleStyle.Render("● Idle")
}
