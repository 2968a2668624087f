package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/automat-io/automat/internal/models"
)

// Spinner frames for active job animation.
var spinnerFrames = []string{"●", "○"}

// AppList is the application table for the Apps tab.
type AppList struct {
	jobs         []models.Job
	cursor       int
	scrollOffset int
	height       int
	spinnerFrame int
}

// NewAppList creates a new app list.
func NewAppList() *AppList {
	return &AppList{}
}

// SetJobs replaces the rows, keeping the cursor in bounds.
func (al *AppList) SetJobs(jobs []models.Job) {
	al.jobs = jobs
	if al.cursor >= len(al.jobs) {
		al.cursor = len(al.jobs) - 1
	}
	if al.cursor < 0 {
		al.cursor = 0
	}
}

// SetHeight sets the visible height.
func (al *AppList) SetHeight(h int) {
	al.height = h
}

// Selected returns the job under the cursor.
func (al *AppList) Selected() (models.Job, bool) {
	if al.cursor < 0 || al.cursor >= len(al.jobs) {
		return models.Job{}, false
	}
	return al.jobs[al.cursor], true
}

// MoveUp moves the cursor up.
func (al *AppList) MoveUp() {
	if al.cursor > 0 {
		al.cursor--
	}
	al.ensureVisible()
}

// MoveDown moves the cursor down.
func (al *AppList) MoveDown() {
	if al.cursor < len(al.jobs)-1 {
		al.cursor++
	}
	al.ensureVisible()
}

// Tick advances the spinner frame.
func (al *AppList) Tick() {
	al.spinnerFrame = (al.spinnerFrame + 1) % len(spinnerFrames)
}

func (al *AppList) ensureVisible() {
	if al.height <= 0 {
		return
	}
	if al.cursor < al.scrollOffset {
		al.scrollOffset = al.cursor
	}
	if al.cursor >= al.scrollOffset+al.height {
		al.scrollOffset = al.cursor - al.height + 1
	}
}

// View renders the table. insight, if set, is shown under the selected row.
func (al *AppList) View(width int, insight string) string {
	if len(al.jobs) == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Render("No applications. Run 'automat apps init' to seed the queue.")
	}

	barWidth := 12
	header := sectionHeaderStyle.Render(fmt.Sprintf("    %-22s %-10s %-8s %-10s %s", "APPLICATION", "VERSION", "SIZE", "STATUS", "PROGRESS"))
	lines := []string{header}

	end := len(al.jobs)
	if al.height > 1 && al.scrollOffset+al.height-1 < end {
		end = al.scrollOffset + al.height - 1
	}

	for i := al.scrollOffset; i < end; i++ {
		j := al.jobs[i]
		row := fmt.Sprintf("%s %-22s %-10s %-8s %-10s %s",
			al.badge(j),
			ansi.Truncate(j.Name, 22, "…"),
			ansi.Truncate(j.Version, 10, "…"),
			j.Size,
			statusLabel(j.Status),
			progressBar(j.Progress, barWidth),
		)
		if width > 2 {
			row = ansi.Truncate(row, width-2, "…")
		}

		line := jobStyle(j.Status).Render(row)
		if i == al.cursor {
			line = selectedItemStyle.Width(width).Render(row)
		}
		lines = append(lines, "  "+line)

		if i == al.cursor && insight != "" {
			w := width - 6
			if w < 10 {
				w = 10
			}
			lines = append(lines, "    "+insightStyle.Width(w).Render(insight))
		}
	}

	if al.scrollOffset > 0 {
		lines = append([]string{lipgloss.NewStyle().Foreground(colorDim).Render("  ▲ more")}, lines...)
	}
	if end < len(al.jobs) {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorDim).Render("  ▼ more"))
	}

	return strings.Join(lines, "\n")
}

func (al *AppList) badge(j models.Job) string {
	switch {
	case j.IsActive():
		return "[" + spinnerFrames[al.spinnerFrame%len(spinnerFrames)] + "]"
	case j.Status == models.JobStatusSuccess:
		return "[✓]"
	case j.Status == models.JobStatusError:
		return "[✗]"
	}
	return "[ ]"
}

// progressBar renders a fixed-width bar followed by the percentage.
func progressBar(progress, width int) string {
	progress = max(0, min(progress, 100))
	filled := progress * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %3d%%", progress)
}
