package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/automat-io/automat/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "  %s %s\n", styleBrand.Render("AutoMat"), styleVersion.Render(buildinfo.Version))
	for _, f := range buildinfo.Fields() {
		fmt.Fprintf(w, "    %s %s\n", styleLabel.Render(fmt.Sprintf("%-8s", f.Label)), styleValue.Render(f.Value))
	}
}
