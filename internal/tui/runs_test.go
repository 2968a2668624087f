package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automat-io/automat/internal/models"
)

func TestRunsView(t *testing.T) {
	r := NewRunsView()
	r.SetSize(60, 10)
	assert.Contains(t, r.View(), "Loading runs")

	r.SetRuns(nil)
	assert.Nil(t, r.Selected())
	assert.Contains(t, r.View(), "No saved runs yet")

	runs := []*models.RunLog{
		{RunID: "newer", StartedAt: "2026-03-14T10:30:00Z", Succeeded: 2, Failed: 1, Status: "completed"},
		{RunID: "older", StartedAt: "2026-03-14T09:30:00Z", Status: "interrupted"},
	}
	r.SetRuns(runs)
	assert.Equal(t, "newer", r.Selected().RunID)

	r.Move(5)
	assert.Equal(t, "older", r.Selected().RunID)
	r.Move(-5)
	assert.Equal(t, "newer", r.Selected().RunID)
	assert.Contains(t, r.View(), "2 ok 1 failed")

	r.Open(runs[0], "[09:30:00] INFO    System initialization complete.\n")
	require.True(t, r.Detail())
	view := r.View()
	assert.Contains(t, view, "Run newer")
	assert.Contains(t, view, "System initialization complete.")

	r.Back()
	assert.False(t, r.Detail())

	// A shorter list pulls the cursor back in range.
	r.Move(1)
	r.SetRuns(runs[:1])
	assert.Equal(t, "newer", r.Selected().RunID)
}

func TestColorTranscriptKeepsText(t *testing.T) {
	body := "[09:30:00] ERROR   FATAL: 7-Zip upload rejected.\nnot a log line\n"
	assert.Equal(t, "[09:30:00] ERROR   FATAL: 7-Zip upload rejected.\nnot a log line", colorTranscript(body))
}

func TestShortTime(t *testing.T) {
	assert.Equal(t, "soon", shortTime("soon"))
	assert.Len(t, shortTime("2026-03-14T09:30:00Z"), len("03-14 09:30"))
}
