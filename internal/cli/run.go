package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/automat-io/automat/internal/batch"
	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/models"
)

var (
	flagRunInterval time.Duration
	flagRunNoFault  bool
	flagRunJSON     bool
	flagRunNoSave   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a batch upload without the dashboard",
	Long: `Run a batch upload in the terminal.

Every idle application is packaged and uploaded. The log feed is printed as
it grows and the transcript is saved under ~/.automat/logs. Press Ctrl+C to
interrupt the run.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().DurationVar(&flagRunInterval, "interval", 0, "Time between progress ticks (default from settings)")
	runCmd.Flags().BoolVar(&flagRunNoFault, "no-fault", false, "Let every upload succeed")
	runCmd.Flags().BoolVar(&flagRunJSON, "json", false, "Print log entries as JSON lines")
	runCmd.Flags().BoolVar(&flagRunNoSave, "no-save", false, "Do not save the run transcript")
}

func runRun(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	jobs, err := config.LoadCatalog()
	if err != nil {
		return err
	}

	interval := settings.Simulation.TickInterval
	if flagRunInterval > 0 {
		interval = flagRunInterval
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := batch.NewDriver(jobs,
		batch.WithInterval(interval),
		batch.WithRules(rulesFromSettings(settings.Simulation, flagRunNoFault)),
		batch.WithLogger(slog.Default().With("component", "batch")),
	)

	out := cmd.OutOrStdout()
	feed := newFeedPrinter(out, flagRunJSON)
	sub, unsubscribe := d.Subscribe()
	defer unsubscribe()

	feed.print(d.Snapshot().Logs)

	startedAt := time.Now().UTC()
	if !d.Start(ctx) {
		feed.print(d.Snapshot().Logs)
		fmt.Fprintln(cmd.ErrOrStderr(), styleWarning.Render("No idle applications to process."))
		return nil
	}

	for running := true; running; {
		select {
		case s := <-sub:
			feed.print(s.Logs)
		case <-d.Done():
			running = false
		}
	}

	final := d.Snapshot()
	feed.print(final.Logs)

	if !flagRunJSON {
		fmt.Fprintln(out)
		printJobTable(out, final.Jobs)
		printSummary(out, final.Counts())
	}

	if flagRunNoSave {
		return nil
	}
	header, err := saveRun(startedAt, final)
	if err != nil {
		return err
	}
	if !flagRunJSON {
		fmt.Fprintf(out, "\n%s %s\n", styleHint.Render("Transcript:"), styleCommand.Render("automat logs "+header.RunID))
	}
	return nil
}

// rulesFromSettings builds tick rules from the simulation settings.
func rulesFromSettings(sim models.SimulationConfig, noFault bool) batch.Rules {
	rules := batch.RulesFromSettings(sim)
	if noFault {
		rules.Fault = batch.NoFault{}
	}
	return rules
}

func saveRun(startedAt time.Time, s batch.State) (*models.RunLog, error) {
	c := s.Counts()
	status := "completed"
	if s.AnyActive() {
		status = "interrupted"
	}
	header, err := config.WriteRunLog(models.RunLog{
		RunID:     uuid.NewString()[:8],
		StartedAt: startedAt.Format(time.RFC3339),
		Succeeded: c.Succeeded,
		Failed:    c.Failed,
		Status:    status,
	}, s.Logs)
	if err != nil {
		return nil, fmt.Errorf("failed to save transcript: %w", err)
	}
	return header, nil
}

func printSummary(w io.Writer, c batch.Counts) {
	fmt.Fprintf(w, "\n  %s %s  %s %s  %s %s\n",
		styleLabel.Render("Succeeded"), styleSuccess.Render(fmt.Sprint(c.Succeeded)),
		styleLabel.Render("Failed"), styleError.Render(fmt.Sprint(c.Failed)),
		styleLabel.Render("Total"), styleValue.Render(fmt.Sprint(c.Total)),
	)
}

// feedPrinter writes log entries it has not written yet. The feed only ever
// grows, so an index is enough to track progress.
type feedPrinter struct {
	w       io.Writer
	asJSON  bool
	printed int
	enc     *json.Encoder
}

func newFeedPrinter(w io.Writer, asJSON bool) *feedPrinter {
	return &feedPrinter{w: w, asJSON: asJSON, enc: json.NewEncoder(w)}
}

func (p *feedPrinter) print(entries []models.LogEntry) {
	for ; p.printed < len(entries); p.printed++ {
		e := entries[p.printed]
		if p.asJSON {
			_ = p.enc.Encode(e)
			continue
		}
		fmt.Fprintf(p.w, "%s %s %s\n",
			styleHint.Render("["+e.Timestamp+"]"),
			pad(levelStyle(e.Level).Render(string(e.Level)), 7),
			e.Message,
		)
	}
}
