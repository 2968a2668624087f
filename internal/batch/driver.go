package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/automat-io/automat/internal/models"
)

// Driver owns a State and advances it on a repeating timer until every job
// has finished. It is the only writer of its State; readers get snapshots.
type Driver struct {
	mu       sync.Mutex
	state    State
	rules    Rules
	interval time.Duration
	clock    clock.WithTicker
	logger   *slog.Logger

	running bool
	done    chan struct{}

	subs    map[int]chan State
	nextSub int
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clock.WithTicker) Option {
	return func(d *Driver) { d.clock = c }
}

// WithInterval sets the time between ticks.
func WithInterval(interval time.Duration) Option {
	return func(d *Driver) {
		if interval > 0 {
			d.interval = interval
		}
	}
}

// WithRules sets the tick rules.
func WithRules(rules Rules) Option {
	return func(d *Driver) { d.rules = rules }
}

// WithLogger sets the logger for run lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// NewDriver creates a stopped driver for jobs.
func NewDriver(jobs []models.Job, opts ...Option) *Driver {
	d := &Driver{
		rules:    DefaultRules(),
		interval: DefaultInterval,
		clock:    clock.RealClock{},
		logger:   slog.Default(),
		subs:     make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.state = New(jobs, d.clock.Now())
	d.done = closedChan()
	return d
}

// Start begins a batch run. Idle jobs move to packaging and the ticker
// starts. It returns false when nothing was started, either because a run
// is already in progress or because no job was idle. The run stops on its
// own once every job has finished, or when ctx is cancelled.
func (d *Driver) Start(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return false
	}

	d.state = StartBatch(d.state, d.clock.Now())
	d.publishLocked()
	if d.state.Phase != PhaseRunning {
		return false
	}

	d.running = true
	d.done = make(chan struct{})
	ticker := d.clock.NewTicker(d.interval)
	go d.run(ctx, ticker, d.done)

	d.logger.Info("batch run started", "interval", d.interval, "jobs", d.state.Counts().Processing)
	return true
}

func (d *Driver) run(ctx context.Context, ticker clock.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.mu.Lock()
			d.state = Interrupt(d.state, d.clock.Now())
			d.running = false
			d.publishLocked()
			d.mu.Unlock()
			d.logger.Warn("batch run interrupted", "error", ctx.Err())
			return

		case now := <-ticker.C():
			if d.tick(now) {
				return
			}
		}
	}
}

// tick advances the state once and reports whether the run has finished.
func (d *Driver) tick(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = Tick(d.state, d.rules, now)
	d.publishLocked()

	if d.state.Phase == PhaseRunning {
		return false
	}

	d.running = false
	c := d.state.Counts()
	d.logger.Info("batch run completed", "succeeded", c.Succeeded, "failed", c.Failed)
	return true
}

// Snapshot returns the current state.
func (d *Driver) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Running reports whether a batch run is in progress.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Done returns a channel closed when the current run ends. When no run is in
// progress the channel is already closed.
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// Wait blocks until the current run ends or ctx is done.
func (d *Driver) Wait(ctx context.Context) error {
	select {
	case <-d.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe returns a channel receiving every new State. Slow subscribers
// only see the latest snapshot. Call cancel to unsubscribe.
func (d *Driver) Subscribe() (<-chan State, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextSub
	d.nextSub++
	ch := make(chan State, 1)
	d.subs[id] = ch

	cancel := func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if c, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (d *Driver) publishLocked() {
	for _, ch := range d.subs {
		select {
		case <-ch:
		default:
		}
		ch <- d.state
	}
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
