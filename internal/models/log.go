package models

import "time"

// LogLevel is the severity of a log feed entry.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarn    LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelSuccess LogLevel = "SUCCESS"
)

// LogEntry is a single line in the deployment log feed.
// Entries are never modified once appended.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp string    `json:"timestamp"` // Clock time shown to the operator
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

// NewLogEntry creates an entry stamped with t.
func NewLogEntry(id string, level LogLevel, message string, t time.Time) LogEntry {
	return LogEntry{
		ID:        id,
		Timestamp: t.Format("15:04:05"),
		Level:     level,
		Message:   message,
		Time:      t,
	}
}

// RunLog is the metadata header of a saved batch run transcript.
type RunLog struct {
	RunID     string `yaml:"run_id"`
	StartedAt string `yaml:"started_at"`
	EndedAt   string `yaml:"ended_at"`
	Succeeded int    `yaml:"succeeded"`
	Failed    int    `yaml:"failed"`
	Status    string `yaml:"status"` // "completed" | "interrupted"
}
