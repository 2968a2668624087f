package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/automat-io/automat/internal/assistant"
	"github.com/automat-io/automat/internal/config"
)

var (
	flagGenerateQuick  int
	flagGenerateOutput string
	flagGenerateList   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [description]",
	Short: "Generate a PowerShell detection script",
	Long: `Generate a PowerShell detection rule script from a plain-language
description, for example:

  automat generate "Check if C:\App\bin.exe version is > 1.2"

Use --list to see the canned descriptions and --quick N to use one.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&flagGenerateQuick, "quick", "q", 0, "Use canned description N (see --list)")
	generateCmd.Flags().StringVarP(&flagGenerateOutput, "output", "o", "", "Write the script to a file")
	generateCmd.Flags().BoolVar(&flagGenerateList, "list", false, "List canned descriptions")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if flagGenerateList {
		for i, p := range assistant.QuickPrompts() {
			fmt.Fprintf(out, "  %s %s\n      %s\n", styleCommand.Render(fmt.Sprintf("%d.", i+1)), p.Label, styleHint.Render(p.Description))
		}
		return nil
	}

	description, err := descriptionFromArgs(args, flagGenerateQuick)
	if err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	svc := assistant.NewServiceFromSettings(settings.AI, slog.Default())

	script, err := svc.GenerateScript(cmd.Context(), description)
	switch {
	case errors.Is(err, assistant.ErrEmptyDescription), errors.Is(err, assistant.ErrMissingCredential):
		return err
	case err != nil:
		fmt.Fprintln(cmd.ErrOrStderr(), styleError.Render(assistant.MsgGenerateFailed))
		return err
	}

	if flagGenerateOutput != "" {
		if err := os.WriteFile(flagGenerateOutput, []byte(script+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write script: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), styleSuccess.Render("Wrote "+flagGenerateOutput))
		return nil
	}

	fmt.Fprintln(out, script)
	return nil
}

// descriptionFromArgs joins the positional args, or picks canned prompt
// quick (1-based) when set.
func descriptionFromArgs(args []string, quick int) (string, error) {
	if quick != 0 {
		prompts := assistant.QuickPrompts()
		if quick < 1 || quick > len(prompts) {
			return "", fmt.Errorf("--quick must be between 1 and %d", len(prompts))
		}
		return prompts[quick-1].Description, nil
	}
	return strings.TrimSpace(strings.Join(args, " ")), nil
}
