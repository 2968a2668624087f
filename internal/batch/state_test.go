package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automat-io/automat/internal/models"
)

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(int) int     { return r.n }

func quietRules() Rules {
	return Rules{Step: DefaultStep, Fault: DefaultFault()}
}

func runToEnd(t *testing.T, s State, rules Rules) (State, int) {
	t.Helper()
	now := t0
	ticks := 0
	for s.Phase == PhaseRunning {
		now = now.Add(DefaultInterval)
		s = Tick(s, rules, now)
		ticks++
		require.Less(t, ticks, 1000, "run never finished")
	}
	return s, ticks
}

func TestNew(t *testing.T) {
	s := New(models.DefaultJobs(), t0)

	assert.Equal(t, PhaseStopped, s.Phase)
	assert.Len(t, s.Jobs, 4)
	require.Len(t, s.Logs, 2)
	assert.Equal(t, MsgSystemReady, s.Logs[0].Message)
	assert.Equal(t, MsgGraphConnected, s.Logs[1].Message)
	assert.Equal(t, "09:30:00", s.Logs[0].Timestamp)
	assert.NotEqual(t, s.Logs[0].ID, s.Logs[1].ID)
}

func TestStartBatch(t *testing.T) {
	s := StartBatch(New(models.DefaultJobs(), t0), t0)

	assert.Equal(t, PhaseRunning, s.Phase)
	assert.Equal(t, StartProgress, s.Counter)
	assert.Equal(t, MsgBatchStarted, s.Logs[len(s.Logs)-1].Message)

	tests := []struct {
		id       string
		status   models.JobStatus
		progress int
	}{
		{"1", models.JobStatusPackaging, 5},
		{"2", models.JobStatusPackaging, 5},
		{"3", models.JobStatusError, 45},
		{"4", models.JobStatusSuccess, 100},
	}
	for _, tt := range tests {
		j, ok := s.Job(tt.id)
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.status, j.Status, j.Name)
		assert.Equal(t, tt.progress, j.Progress, j.Name)
	}
}

func TestStartBatchWhileRunning(t *testing.T) {
	s := StartBatch(New(models.DefaultJobs(), t0), t0)
	s = Tick(s, quietRules(), t0.Add(time.Second))

	again := StartBatch(s, t0.Add(2*time.Second))
	assert.Equal(t, s, again)
}

func TestStartBatchNoIdleJobs(t *testing.T) {
	jobs := []models.Job{{ID: "9", Name: "Done", Status: models.JobStatusSuccess, Progress: 100}}
	s := StartBatch(New(jobs, t0), t0)

	assert.Equal(t, PhaseStopped, s.Phase)
	assert.Equal(t, 0, s.Counter)
	assert.Equal(t, models.JobStatusSuccess, s.Jobs[0].Status)
}

func TestFullRun(t *testing.T) {
	s := StartBatch(New(models.DefaultJobs(), t0), t0)
	s, ticks := runToEnd(t, s, quietRules())

	assert.Equal(t, 19, ticks)
	assert.Equal(t, PhaseStopped, s.Phase)
	assert.False(t, s.AnyActive())

	chrome, _ := s.Job("1")
	assert.Equal(t, models.JobStatusSuccess, chrome.Status)
	assert.Equal(t, 100, chrome.Progress)

	zip, _ := s.Job("2")
	assert.Equal(t, models.JobStatusError, zip.Status)
	assert.Equal(t, FailProgress, zip.Progress)

	adobe, _ := s.Job("3")
	assert.Equal(t, models.JobStatusError, adobe.Status)
	assert.Equal(t, 45, adobe.Progress)

	vlc, _ := s.Job("4")
	assert.Equal(t, models.JobStatusSuccess, vlc.Status)

	last, ok := s.LastError()
	require.True(t, ok)
	assert.Equal(t, "FATAL: 7-Zip upload rejected. 401 Unauthorized.", last.Message)
	assert.Equal(t, MsgBatchCompleted, s.Logs[len(s.Logs)-1].Message)
	assert.Equal(t, models.LogLevelSuccess, s.Logs[len(s.Logs)-1].Level)

	c := s.Counts()
	assert.Equal(t, Counts{Total: 4, Succeeded: 2, Failed: 2}, c)
}

func TestFullRunNoFault(t *testing.T) {
	s := StartBatch(New(models.DefaultJobs(), t0), t0)
	s, _ = runToEnd(t, s, Rules{Step: DefaultStep, Fault: NoFault{}})

	zip, _ := s.Job("2")
	assert.Equal(t, models.JobStatusSuccess, zip.Status)
	assert.Equal(t, 100, zip.Progress)
}

func TestProgressIsMonotonic(t *testing.T) {
	s := StartBatch(New(models.DefaultJobs(), t0), t0)
	rules := quietRules()
	now := t0

	for s.Phase == PhaseRunning {
		prev := s
		now = now.Add(DefaultInterval)
		s = Tick(s, rules, now)

		for i, j := range s.Jobs {
			before := prev.Jobs[i]
			if j.Status == models.JobStatusError && before.IsActive() {
				// a rejected upload pins its bar at FailProgress
				assert.Equal(t, FailProgress, j.Progress)
				continue
			}
			assert.GreaterOrEqual(t, j.Progress, before.Progress, j.Name)
		}
		for i := 1; i < len(s.Logs); i++ {
			assert.False(t, s.Logs[i].Time.Before(s.Logs[i-1].Time))
		}
	}
}

func TestAdvanceStatusThreshold(t *testing.T) {
	s := StartBatch(New(models.DefaultJobs(), t0), t0)

	s = Advance(s, 30, NoFault{}, t0)
	j, _ := s.Job("1")
	assert.Equal(t, models.JobStatusPackaging, j.Status)
	assert.Equal(t, 30, j.Progress)

	s = Advance(s, 35, NoFault{}, t0)
	j, _ = s.Job("1")
	assert.Equal(t, models.JobStatusUploading, j.Status)
	assert.Equal(t, 35, j.Progress)
}

func TestAdvanceKeepsHigherProgress(t *testing.T) {
	jobs := []models.Job{{ID: "1", Name: "App", Status: models.JobStatusUploading, Progress: 60}}
	s := Advance(New(jobs, t0), 40, NoFault{}, t0)

	assert.Equal(t, 60, s.Jobs[0].Progress)
	assert.Equal(t, models.JobStatusUploading, s.Jobs[0].Status)
}

func TestUploadingJobStaysUploadingEarlyInRun(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", Name: "New", Status: models.JobStatusIdle},
		{ID: "2", Name: "Mid", Status: models.JobStatusUploading, Progress: 60},
	}
	s := StartBatch(New(jobs, t0), t0)
	s = Tick(s, Rules{Step: DefaultStep, Fault: NoFault{}}, t0.Add(DefaultInterval))

	require.Equal(t, 10, s.Counter)
	mid, _ := s.Job("2")
	assert.Equal(t, models.JobStatusUploading, mid.Status)
	assert.Equal(t, 60, mid.Progress)
	fresh, _ := s.Job("1")
	assert.Equal(t, models.JobStatusPackaging, fresh.Status)
	assert.Equal(t, 10, fresh.Progress)
}

func TestAdvanceCustomFault(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", Name: "Alpha", Status: models.JobStatusUploading, Progress: 95},
		{ID: "2", Name: "Beta", Status: models.JobStatusUploading, Progress: 95},
	}
	fault := FaultFunc(func(j models.Job) bool { return j.ID == "2" })
	s := Advance(New(jobs, t0), 100, fault, t0)

	assert.Equal(t, models.JobStatusSuccess, s.Jobs[0].Status)
	assert.Equal(t, models.JobStatusError, s.Jobs[1].Status)
	assert.Equal(t, FailProgress, s.Jobs[1].Progress)
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	s := StartBatch(New(models.DefaultJobs(), t0), t0)
	jobs := append([]models.Job(nil), s.Jobs...)
	logs := len(s.Logs)

	_ = Tick(s, Rules{Step: 95, Fault: DefaultFault()}, t0.Add(time.Second))

	assert.Equal(t, jobs, s.Jobs)
	assert.Len(t, s.Logs, logs)
	assert.Equal(t, PhaseRunning, s.Phase)
}

func TestTickChatter(t *testing.T) {
	s := StartBatch(New(models.DefaultJobs(), t0), t0)
	n := len(s.Logs)

	s = Tick(s, Rules{Step: 5, ChatterProbability: 0.4, Rand: fixedRand{f: 0.1, n: 417}}, t0)
	require.Len(t, s.Logs, n+1)
	assert.Equal(t, "Packaging stream [417] processed.", s.Logs[n].Message)

	s = Tick(s, Rules{Step: 5, ChatterProbability: 0.4, Rand: fixedRand{f: 0.9}}, t0)
	assert.Len(t, s.Logs, n+1)
}

func TestTickStopped(t *testing.T) {
	s := New(models.DefaultJobs(), t0)
	assert.Equal(t, s, Tick(s, quietRules(), t0))
}

func TestInterrupt(t *testing.T) {
	s := StartBatch(New(models.DefaultJobs(), t0), t0)
	s = Tick(s, quietRules(), t0.Add(time.Second))

	stopped := Interrupt(s, t0.Add(2*time.Second))
	assert.Equal(t, PhaseStopped, stopped.Phase)
	assert.Equal(t, s.Jobs, stopped.Jobs)

	last := stopped.Logs[len(stopped.Logs)-1]
	assert.Equal(t, models.LogLevelWarn, last.Level)
	assert.Equal(t, MsgBatchStopped, last.Message)

	assert.Equal(t, stopped, Interrupt(stopped, t0.Add(3*time.Second)))
}

func TestLogTimestampsNeverGoBackwards(t *testing.T) {
	s := New(nil, t0)
	s = StartBatch(s, t0.Add(-time.Hour))

	last := s.Logs[len(s.Logs)-1]
	assert.Equal(t, t0, last.Time)
}

func TestLastErrorNone(t *testing.T) {
	_, ok := New(models.DefaultJobs(), t0).LastError()
	assert.False(t, ok)
}
