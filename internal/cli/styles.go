package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/automat-io/automat/internal/models"
)

// Adaptive colors matching the TUI palette.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "25", Dark: "69"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Semantic styles for CLI output.
var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	styleVersion = lipgloss.NewStyle().Foreground(colorGreen)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
	styleCommand = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// Job status badge styles.
var (
	badgeIdle    = lipgloss.NewStyle().Foreground(colorDim)
	badgeActive  = lipgloss.NewStyle().Foreground(colorCyan)
	badgeSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	badgeError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// Log level styles.
var (
	levelInfo    = lipgloss.NewStyle().Foreground(colorBlue)
	levelWarn    = lipgloss.NewStyle().Foreground(colorYellow)
	levelError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	levelSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

func statusBadge(s models.JobStatus) string {
	label := string(s)
	switch s {
	case models.JobStatusSuccess:
		return badgeSuccess.Render(label)
	case models.JobStatusError:
		return badgeError.Render("FAILED")
	case models.JobStatusPackaging, models.JobStatusUploading:
		return badgeActive.Render(label)
	default:
		return badgeIdle.Render(label)
	}
}

func levelStyle(l models.LogLevel) lipgloss.Style {
	switch l {
	case models.LogLevelWarn:
		return levelWarn
	case models.LogLevelError:
		return levelError
	case models.LogLevelSuccess:
		return levelSuccess
	default:
		return levelInfo
	}
}
