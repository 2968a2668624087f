package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/automat-io/automat/internal/config"
)

var logsCmd = &cobra.Command{
	Use:   "logs [run-id]",
	Short: "List saved runs or show a run transcript",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogs,
}

func runLogs(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		header, body, err := config.ReadRunLog(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s  %s %s  %s %s\n\n",
			styleLabel.Render("Run"), styleCommand.Render(header.RunID),
			styleLabel.Render("Started"), styleValue.Render(header.StartedAt),
			styleLabel.Render("Status"), styleValue.Render(header.Status),
		)
		fmt.Fprint(out, strings.TrimLeft(body, "\n"))
		return nil
	}

	runs, err := config.ListRunLogs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No saved runs. Run 'automat run' to start one.")
		return nil
	}

	fmt.Fprintln(out, styleLabel.Render(fmt.Sprintf("  %s %s %s %s %s", pad("RUN", 10), pad("STARTED", 26), pad("STATUS", 12), pad("OK", 4), "FAILED")))
	for _, r := range runs {
		failed := fmt.Sprint(r.Failed)
		if r.Failed > 0 {
			failed = styleError.Render(failed)
		}
		fmt.Fprintf(out, "  %s %s %s %s %s\n",
			pad(styleCommand.Render(r.RunID), 10),
			pad(r.StartedAt, 26),
			pad(r.Status, 12),
			pad(styleSuccess.Render(fmt.Sprint(r.Succeeded)), 4),
			failed,
		)
	}
	return nil
}
