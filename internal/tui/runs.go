package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/automat-io/automat/internal/models"
)

// detailHeaderLines is the height of the title block above an open transcript.
const detailHeaderLines = 3

// RunsView browses saved run transcripts: a list, and one transcript at a time.
type RunsView struct {
	runs   []*models.RunLog
	cursor int
	offset int
	listed bool

	open *models.RunLog
	body viewport.Model

	width  int
	height int
}

func NewRunsView() *RunsView {
	return &RunsView{body: viewport.New(0, 0)}
}

func (r *RunsView) SetSize(width, height int) {
	r.width, r.height = width, height
	r.body.Width = width
	r.body.Height = max(height-detailHeaderLines, 1)
}

// SetRuns replaces the list, keeping the cursor in range.
func (r *RunsView) SetRuns(runs []*models.RunLog) {
	r.runs = runs
	r.listed = true
	r.cursor = max(min(r.cursor, len(runs)-1), 0)
	r.scrollTo(r.cursor)
}

// Open shows a transcript body with its lines coloured by level.
func (r *RunsView) Open(run *models.RunLog, body string) {
	r.open = run
	r.body.SetContent(colorTranscript(body))
	r.body.GotoTop()
}

func (r *RunsView) Detail() bool { return r.open != nil }

func (r *RunsView) Back() { r.open = nil }

// Selected returns the run under the cursor, or nil.
func (r *RunsView) Selected() *models.RunLog {
	if r.cursor >= len(r.runs) {
		return nil
	}
	return r.runs[r.cursor]
}

// Move steps the cursor, or scrolls the open transcript.
func (r *RunsView) Move(delta int) {
	if r.open != nil {
		if delta < 0 {
			r.body.LineUp(-delta)
		} else {
			r.body.LineDown(delta)
		}
		return
	}
	r.cursor = max(min(r.cursor+delta, len(r.runs)-1), 0)
	r.scrollTo(r.cursor)
}

// Page scrolls the open transcript by half a screen.
func (r *RunsView) Page(down bool) {
	if r.open == nil {
		return
	}
	if down {
		r.body.HalfViewDown()
	} else {
		r.body.HalfViewUp()
	}
}

func (r *RunsView) scrollTo(i int) {
	rows := max(r.height, 1)
	if i < r.offset {
		r.offset = i
	}
	if i >= r.offset+rows {
		r.offset = i - rows + 1
	}
}

func (r *RunsView) View() string {
	if r.open != nil {
		return r.detailView()
	}

	hint := lipgloss.NewStyle().Foreground(colorDim).Width(r.width).Align(lipgloss.Center)
	switch {
	case !r.listed:
		return hint.Render("\nLoading runs...")
	case len(r.runs) == 0:
		return hint.Render("\nNo saved runs yet. Start a batch with s.")
	}

	end := min(r.offset+max(r.height, 1), len(r.runs))
	rows := make([]string, 0, end-r.offset)
	for i := r.offset; i < end; i++ {
		if i == r.cursor {
			rows = append(rows, selectedItemStyle.Width(r.width).Render(runSummary(r.runs[i])))
			continue
		}
		rows = append(rows, "  "+runSummary(r.runs[i]))
	}
	return strings.Join(rows, "\n")
}

func (r *RunsView) detailView() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorWhite).
		Render(fmt.Sprintf("Run %s  %s", r.open.RunID, runOutcome(r.open)))
	span := lipgloss.NewStyle().Foreground(colorDim).
		Render(fmt.Sprintf("%s to %s · Esc back", shortTime(r.open.StartedAt), shortTime(r.open.EndedAt)))
	rule := lipgloss.NewStyle().Foreground(colorDim).Render(strings.Repeat("─", r.width))
	return strings.Join([]string{title, span, rule, r.body.View()}, "\n")
}

// runSummary renders "a1b2c3d4  03-14 09:30  2 ok 1 failed  completed".
func runSummary(run *models.RunLog) string {
	dim := lipgloss.NewStyle().Foreground(colorDim)
	return fmt.Sprintf("%s  %s  %s",
		lipgloss.NewStyle().Bold(true).Render(run.RunID),
		dim.Render(shortTime(run.StartedAt)),
		runOutcome(run))
}

func runOutcome(run *models.RunLog) string {
	counts := fmt.Sprintf("%d ok %d failed", run.Succeeded, run.Failed)
	if run.Failed > 0 {
		counts = lipgloss.NewStyle().Foreground(colorRed).Render(counts)
	}
	status := lipgloss.NewStyle().Foreground(colorGreen)
	if run.Status != "completed" {
		status = status.Foreground(colorYellow)
	}
	return counts + "  " + status.Render(run.Status)
}

// shortTime turns an RFC 3339 stamp into "01-02 15:04" in local time.
func shortTime(stamp string) string {
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return stamp
	}
	return t.Local().Format("01-02 15:04")
}

// colorTranscript styles the level column of "[15:04:05] LEVEL   message" lines.
func colorTranscript(body string) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i, line := range lines {
		stamp, rest, ok := strings.Cut(line, " ")
		if !ok || !strings.HasPrefix(stamp, "[") {
			continue
		}
		level, msg, _ := strings.Cut(rest, " ")
		lines[i] = stamp + " " + levelStyle(models.LogLevel(level)).Render(level) + " " + msg
	}
	return strings.Join(lines, "\n")
}
