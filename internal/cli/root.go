// Package cli implements the automat CLI commands.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/automat-io/automat/internal/logger"
	"github.com/automat-io/automat/internal/tui"
)

var (
	flagLogLevel string
	logLevel     = slog.LevelWarn
)

var rootCmd = &cobra.Command{
	Use:   "automat",
	Short: "Package and upload applications to Intune",
	Long: `AutoMat packages applications and uploads them to Microsoft Intune.

Run without arguments to open the dashboard.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logLevel = level
		logger.New(logger.Config{Level: level, Format: "text", Output: cmd.ErrOrStderr()})
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(logLevel)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
