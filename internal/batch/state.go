// Package batch simulates packaging and uploading a queue of applications.
//
// State is an immutable snapshot of the job registry and log feed. The
// transition functions in this package never modify their input; each
// returns a new State. Driver runs those transitions on a timer.
package batch

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/automat-io/automat/internal/models"
)

// Reference timings for a batch run.
const (
	DefaultInterval           = 600 * time.Millisecond
	DefaultStep               = 5
	DefaultChatterProbability = 0.4

	// StartProgress is the progress every job is given when a run starts.
	StartProgress = 5

	// uploadThreshold is the progress past which a job counts as uploading.
	uploadThreshold = 30
)

// Log feed messages.
const (
	MsgSystemReady    = "System initialization complete."
	MsgGraphConnected = "Graph API Connection: ESTABLISHED"
	MsgBatchStarted   = "Initiating batch upload sequence..."
	MsgBatchCompleted = "Batch sequence completed."
	MsgBatchStopped   = "Batch sequence interrupted."
)

// Phase is the run state of the progress driver.
type Phase int

const (
	PhaseStopped Phase = iota
	PhaseRunning
)

func (p Phase) String() string {
	if p == PhaseRunning {
		return "RUNNING"
	}
	return "STOPPED"
}

// newID generates log entry identifiers.
var newID = uuid.NewString

// Rand is the randomness used for background chatter.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Rules parameterize a tick.
type Rules struct {
	Step               int
	ChatterProbability float64
	Fault              FaultPolicy
	Rand               Rand // nil disables chatter
}

// DefaultRules returns the reference tick behavior.
func DefaultRules() Rules {
	return Rules{
		Step:               DefaultStep,
		ChatterProbability: DefaultChatterProbability,
		Fault:              DefaultFault(),
		Rand:               rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// State is a snapshot of every job and the log feed.
type State struct {
	Jobs    []models.Job
	Logs    []models.LogEntry
	Counter int // Shared progress counter of the current run
	Phase   Phase
}

// New returns the initial state for jobs, with the boot lines in the log feed.
func New(jobs []models.Job, now time.Time) State {
	s := State{Jobs: slices.Clone(jobs)}
	return s.appendLogs(now,
		logLine{models.LogLevelInfo, MsgSystemReady},
		logLine{models.LogLevelInfo, MsgGraphConnected},
	)
}

// StartBatch moves every idle job to packaging at StartProgress.
// Jobs in any other status are left untouched. Calling it while a run is in
// progress does nothing.
func StartBatch(s State, now time.Time) State {
	if s.Phase == PhaseRunning {
		return s
	}

	next := s.appendLogs(now, logLine{models.LogLevelInfo, MsgBatchStarted})
	next.Jobs = slices.Clone(s.Jobs)
	started := false
	for i := range next.Jobs {
		if next.Jobs[i].Status == models.JobStatusIdle {
			next.Jobs[i].Status = models.JobStatusPackaging
			next.Jobs[i].Progress = StartProgress
			started = true
		}
	}
	if started {
		next.Counter = StartProgress
		next.Phase = PhaseRunning
	}
	return next
}

// Advance applies tickProgress to every packaging or uploading job.
// Once the counter reaches 100 each active job finishes: rejected jobs move
// to ERROR with their progress pinned at FailProgress, the rest to SUCCESS.
// Finished and idle jobs are never touched.
func Advance(s State, tickProgress int, fault FaultPolicy, now time.Time) State {
	if fault == nil {
		fault = NoFault{}
	}

	next := s
	next.Jobs = slices.Clone(s.Jobs)
	var lines []logLine
	for i := range next.Jobs {
		job := &next.Jobs[i]
		if !job.IsActive() {
			continue
		}

		if tickProgress >= 100 {
			if fault.ShouldFail(*job) {
				job.Status = models.JobStatusError
				job.Progress = FailProgress
				lines = append(lines, logLine{models.LogLevelError,
					fmt.Sprintf("FATAL: %s upload rejected. 401 Unauthorized.", job.Name)})
				continue
			}
			job.Status = models.JobStatusSuccess
			job.Progress = 100
			continue
		}

		// Status follows the kept progress so it never moves back to PACKAGING.
		job.Progress = max(job.Progress, tickProgress)
		if job.Progress > uploadThreshold {
			job.Status = models.JobStatusUploading
		} else {
			job.Status = models.JobStatusPackaging
		}
	}
	return next.appendLogs(now, lines...)
}

// Tick performs one driver step: bump the counter, maybe emit chatter,
// advance the jobs and finish the run once nothing is active.
// A stopped state is returned unchanged.
func Tick(s State, rules Rules, now time.Time) State {
	if s.Phase != PhaseRunning {
		return s
	}

	step := rules.Step
	if step <= 0 {
		step = DefaultStep
	}
	next := s
	next.Counter = s.Counter + step

	if rules.Rand != nil && rules.Rand.Float64() < rules.ChatterProbability {
		next = next.appendLogs(now, logLine{models.LogLevelInfo,
			fmt.Sprintf("Packaging stream [%d] processed.", rules.Rand.IntN(1001))})
	}

	next = Advance(next, next.Counter, rules.Fault, now)

	if !next.AnyActive() {
		next.Phase = PhaseStopped
		next = next.appendLogs(now, logLine{models.LogLevelSuccess, MsgBatchCompleted})
	}
	return next
}

// Interrupt stops a running batch where it stands. Jobs keep their status
// and progress.
func Interrupt(s State, now time.Time) State {
	if s.Phase != PhaseRunning {
		return s
	}
	next := s.appendLogs(now, logLine{models.LogLevelWarn, MsgBatchStopped})
	next.Phase = PhaseStopped
	return next
}

// AnyActive reports whether any job is packaging or uploading.
func (s State) AnyActive() bool {
	for _, j := range s.Jobs {
		if j.IsActive() {
			return true
		}
	}
	return false
}

// Job returns the job with the given id.
func (s State) Job(id string) (models.Job, bool) {
	for _, j := range s.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return models.Job{}, false
}

// LastError returns the most recent ERROR entry in the log feed.
func (s State) LastError() (models.LogEntry, bool) {
	for i := len(s.Logs) - 1; i >= 0; i-- {
		if s.Logs[i].Level == models.LogLevelError {
			return s.Logs[i], true
		}
	}
	return models.LogEntry{}, false
}

// Counts summarizes job statuses.
type Counts struct {
	Total      int
	Succeeded  int
	Failed     int
	Processing int
	Idle       int
}

// Counts returns the number of jobs in each status group.
func (s State) Counts() Counts {
	c := Counts{Total: len(s.Jobs)}
	for _, j := range s.Jobs {
		switch {
		case j.Status == models.JobStatusSuccess:
			c.Succeeded++
		case j.Status == models.JobStatusError:
			c.Failed++
		case j.IsActive():
			c.Processing++
		default:
			c.Idle++
		}
	}
	return c
}

type logLine struct {
	level   models.LogLevel
	message string
}

// appendLogs returns a copy of s with lines appended. The copy never shares
// spare capacity with s, so earlier snapshots keep their own feed.
// Timestamps never go backwards.
func (s State) appendLogs(now time.Time, lines ...logLine) State {
	if len(lines) == 0 {
		return s
	}
	if n := len(s.Logs); n > 0 && now.Before(s.Logs[n-1].Time) {
		now = s.Logs[n-1].Time
	}
	logs := make([]models.LogEntry, len(s.Logs), len(s.Logs)+len(lines))
	copy(logs, s.Logs)
	for _, l := range lines {
		logs = append(logs, models.NewLogEntry(newID(), l.level, l.message, now))
	}
	s.Logs = logs
	return s
}
