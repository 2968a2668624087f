package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/automat-io/automat/internal/buildinfo"
)

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
	versionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})
)

var daemonVersionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "automatd %s\n", versionStyle.Render(buildinfo.Version))
		for _, f := range buildinfo.Fields() {
			fmt.Fprintf(out, "  %s %s\n", labelStyle.Render(f.Label+":"), f.Value)
		}
	},
}

func init() {
	rootCmd.AddCommand(daemonVersionCmd)
}
