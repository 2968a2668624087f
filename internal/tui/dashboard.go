package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/automat-io/automat/internal/batch"
)

// renderDashboard shows the stat cards and a compact progress overview.
func renderDashboard(s batch.State, width int) string {
	c := s.Counts()

	cards := []string{
		renderCard("Total Apps", c.Total, colorWhite),
		renderCard("Successful", c.Succeeded, colorGreen),
		renderCard("Failed", c.Failed, colorRed),
		renderCard("Processing", c.Processing, colorBlue),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if lipgloss.Width(row) > width {
		row = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3]),
		)
	}

	lines := []string{row, ""}

	if s.Phase == batch.PhaseRunning {
		lines = append(lines, badgeRunningStyle.Render(fmt.Sprintf("● Batch running  %d%%", s.Counter)))
	} else if c.Idle > 0 {
		lines = append(lines, hintStyle.Render(fmt.Sprintf("%d app(s) waiting. Press ", c.Idle))+
			keyStyle.Render("s")+hintStyle.Render(" to start the batch upload."))
	} else {
		lines = append(lines, hintStyle.Render("No idle apps in the queue."))
	}
	lines = append(lines, "")

	barWidth := width - 32
	if barWidth > 30 {
		barWidth = 30
	}
	if barWidth < 5 {
		barWidth = 5
	}
	for _, j := range s.Jobs {
		name := lipgloss.NewStyle().Width(20).MaxWidth(20).Render(j.Name)
		lines = append(lines, name+" "+jobStyle(j.Status).Render(progressBar(j.Progress, barWidth)))
	}

	return strings.Join(lines, "\n")
}

func renderCard(label string, value int, color lipgloss.TerminalColor) string {
	num := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprint(value))
	return cardStyle.Width(14).Render(cardLabelStyle.Render(label) + "\n" + num)
}
