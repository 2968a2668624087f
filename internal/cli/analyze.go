package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/automat-io/automat/internal/assistant"
	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/models"
)

var flagAnalyzeRun string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [message]",
	Short: "Explain an upload error",
	Long: `Ask the assistant what went wrong for an error message.

With no message, the most recent error in the newest saved run transcript
is analyzed. --run picks a specific run instead.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&flagAnalyzeRun, "run", "", `Analyze the last error of a saved run ("latest" for the newest)`)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	message, err := analysisTarget(args, flagAnalyzeRun)
	if err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	svc := assistant.NewServiceFromSettings(settings.AI, slog.Default())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n\n", styleLabel.Render("Error:"), message)
	fmt.Fprintln(out, styleBrand.Render("AI Root Cause Analysis"))
	fmt.Fprintln(out, svc.Analyze(cmd.Context(), message))
	return nil
}

// analysisTarget picks the message to analyze: the given words, else the
// last error of run, else the last error of the newest run.
func analysisTarget(args []string, run string) (string, error) {
	message := strings.TrimSpace(strings.Join(args, " "))
	if run == "" {
		if message != "" {
			return message, nil
		}
		run = "latest"
	}
	return lastRunError(run)
}

// lastRunError returns the message of the last ERROR line in a saved run.
func lastRunError(runID string) (string, error) {
	if runID == "latest" {
		runs, err := config.ListRunLogs()
		if err != nil {
			return "", err
		}
		if len(runs) == 0 {
			return "", fmt.Errorf("no saved runs")
		}
		runID = runs[0].RunID
	}

	_, body, err := config.ReadRunLog(runID)
	if err != nil {
		return "", err
	}
	msg, ok := lastErrorInTranscript(body)
	if !ok {
		return "", fmt.Errorf("run %s: %w", runID, assistant.ErrNoErrorLog)
	}
	return msg, nil
}

// lastErrorInTranscript scans transcript lines of the form
// "[15:04:05] ERROR   message" from the end.
func lastErrorInTranscript(body string) (string, bool) {
	lines := strings.Split(body, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		_, rest, ok := strings.Cut(lines[i], "] ")
		if !ok {
			continue
		}
		level, msg, ok := strings.Cut(rest, " ")
		if ok && models.LogLevel(level) == models.LogLevelError {
			return strings.TrimSpace(msg), true
		}
	}
	return "", false
}
