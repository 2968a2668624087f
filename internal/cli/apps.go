package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/models"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Manage the packaging queue",
	Long:  `Manage the applications in ~/.automat/apps.yaml.`,
}

var appsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := config.LoadCatalog()
		if err != nil {
			return err
		}
		printJobTable(cmd.OutOrStdout(), jobs)
		return nil
	},
}

var flagAppsForce bool

var appsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default application list to apps.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GlobalCatalogFile()
		if err != nil {
			return err
		}
		if config.FileExists(path) && !flagAppsForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.SaveCatalog(models.DefaultJobs()); err != nil {
			return fmt.Errorf("failed to write catalog: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("Wrote "+path))
		return nil
	},
}

func init() {
	appsInitCmd.Flags().BoolVar(&flagAppsForce, "force", false, "Overwrite an existing apps.yaml")

	appsCmd.AddCommand(appsInitCmd)
	appsCmd.AddCommand(appsListCmd)
}

// printJobTable writes one row per job.
func printJobTable(w io.Writer, jobs []models.Job) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No applications. Run 'automat apps init' to create the default list.")
		return
	}

	header := fmt.Sprintf("  %s %s %s %s %s %s",
		pad("ID", 4), pad("NAME", 22), pad("VERSION", 12), pad("SIZE", 8), pad("STATUS", 10), "PROGRESS")
	fmt.Fprintln(w, styleLabel.Render(header))

	for _, j := range jobs {
		fmt.Fprintf(w, "  %s %s %s %s %s %s\n",
			pad(styleHint.Render(j.ID), 4),
			pad(styleValue.Render(j.Name), 22),
			pad(j.Version, 12),
			pad(j.Size, 8),
			pad(statusBadge(j.Status), 10),
			progressBar(j.Progress, 20),
		)
	}
}

// pad right-pads s to width visible cells.
func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func progressBar(progress, width int) string {
	progress = max(0, min(100, progress))
	filled := progress * width / 100
	return strings.Repeat("█", filled) + styleHint.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3d%%", progress)
}
