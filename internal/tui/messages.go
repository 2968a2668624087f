package tui

import (
	"github.com/automat-io/automat/internal/models"
)

// tickMsg advances the batch run by one step.
type tickMsg struct {
	run int // Run generation the tick belongs to
}

// ScriptGeneratedMsg carries the assistant's detection script.
type ScriptGeneratedMsg struct {
	Script string
	Err    error
}

// AnalysisMsg carries the assistant's explanation for a failed app.
type AnalysisMsg struct {
	JobID    string
	Analysis string
}

// ConfigLoadedMsg carries the tenant configuration.
type ConfigLoadedMsg struct {
	Config models.Config
}

// ConfigSavedMsg signals the configuration was stored.
type ConfigSavedMsg struct {
	Config models.Config
}

// RunsLoadedMsg carries the saved run transcripts.
type RunsLoadedMsg struct {
	Runs []*models.RunLog
}

// RunContentMsg carries a single transcript body.
type RunContentMsg struct {
	Run     *models.RunLog
	Content string
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearSavedMsg clears the "Saved" indicator.
type ClearSavedMsg struct{}
