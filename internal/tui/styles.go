package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/automat-io/automat/internal/models"
)

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "25", Dark: "69"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
	colorPurple = lipgloss.AdaptiveColor{Light: "91", Dark: "141"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	focusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorWhite)

	unfocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)
)

// Tab styles.
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(colorWhite)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// App list styles.
var (
	appIdleStyle    = lipgloss.NewStyle().Foreground(colorDim)
	appActiveStyle  = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	appSuccessStyle = lipgloss.NewStyle().Foreground(colorGreen)
	appFailedStyle  = lipgloss.NewStyle().Foreground(colorRed)

	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	insightStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorPurple).
			Foreground(colorWhite).
			PaddingLeft(1)
)

// Run badge styles.
var (
	badgeIdleStyle    = lipgloss.NewStyle().Foreground(colorDim)
	badgeRunningStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// Stat card styles.
var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	cardLabelStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Log feed level styles.
var (
	levelInfoStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	levelWarnStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	levelErrorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	levelSuccessStyle = lipgloss.NewStyle().Foreground(colorGreen)
	timestampStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Key hint styles for status bar.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Settings form styles.
var (
	settingsLabelStyle = lipgloss.NewStyle().
				Width(28).
				Foreground(colorDim)

	settingsValueStyle = lipgloss.NewStyle().
				Foreground(colorWhite)

	settingsCursorStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})
)

// Assistant styles.
var (
	scriptStyle = lipgloss.NewStyle().Foreground(colorGreen)

	quickPromptStyle = lipgloss.NewStyle().
				Foreground(colorCyan)
)

func jobStyle(s models.JobStatus) lipgloss.Style {
	switch s {
	case models.JobStatusSuccess:
		return appSuccessStyle
	case models.JobStatusError:
		return appFailedStyle
	case models.JobStatusPackaging, models.JobStatusUploading:
		return appActiveStyle
	default:
		return appIdleStyle
	}
}

// statusLabel is the operator-facing name of a job status.
func statusLabel(s models.JobStatus) string {
	if s == models.JobStatusError {
		return "FAILED"
	}
	return string(s)
}

func levelStyle(l models.LogLevel) lipgloss.Style {
	switch l {
	case models.LogLevelWarn:
		return levelWarnStyle
	case models.LogLevelError:
		return levelErrorStyle
	case models.LogLevelSuccess:
		return levelSuccessStyle
	default:
		return levelInfoStyle
	}
}
