package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/models"
	"github.com/automat-io/automat/internal/settingsclient"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage automatd, the configuration daemon",
}

func init() {
	daemonCmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start the daemon if it is not running",
			Args:  cobra.NoArgs,
			RunE:  runDaemonStart,
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show daemon address, uptime and health",
			Args:  cobra.NoArgs,
			RunE:  runDaemonStatus,
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop the daemon",
			Args:  cobra.NoArgs,
			RunE:  runDaemonStop,
		},
	)
}

func runDaemonStart(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if running, info, err := config.IsDaemonRunning(); err != nil {
		return err
	} else if running {
		fmt.Fprintf(out, "%s already running on %s (pid %d)\n",
			daemonBinary, styleValue.Render(info.BaseURL()), info.PID)
		return nil
	}

	info, err := EnsureDaemon(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s on %s (pid %d)\n",
		daemonBinary, styleSuccess.Render("started"), styleValue.Render(info.BaseURL()), info.PID)
	return nil
}

func runDaemonStatus(cmd *cobra.Command, _ []string) error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !running {
		fmt.Fprintln(out, styleHint.Render("daemon is not running"))
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
	defer cancel()
	health, herr := settingsclient.New(info.BaseURL()).Health(ctx)
	printDaemonStatus(out, info, health, herr, time.Now())
	return nil
}

func printDaemonStatus(w io.Writer, info *models.DaemonInfo, health settingsclient.Health, herr error, now time.Time) {
	row := func(label, value string) {
		fmt.Fprintf(w, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-8s", label)), value)
	}

	fmt.Fprintln(w, styleBrand.Render(daemonBinary))
	row("api", styleValue.Render(info.BaseURL()))
	row("pid", fmt.Sprint(info.PID))
	row("uptime", now.Sub(info.StartedAt).Truncate(time.Second).String())
	if herr != nil {
		row("health", styleError.Render(herr.Error()))
		return
	}
	row("health", styleSuccess.Render(health.Status))
	row("version", styleVersion.Render(health.Version))
}

func runDaemonStop(cmd *cobra.Command, _ []string) error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !running {
		fmt.Fprintln(out, styleHint.Render("daemon is not running"))
		return nil
	}
	if err := stopDaemon(cmd.Context(), info); err != nil {
		return err
	}
	fmt.Fprintln(out, "daemon stopped")
	return nil
}
