// Package assistant talks to the hosted generative model that writes
// detection scripts and explains upload failures.
package assistant

import (
	"context"
	"errors"
	"fmt"
)

// ScriptGenerator turns a plain-language requirement into a detection script.
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, description string) (string, error)
}

// Analyzer explains a single error log message.
type Analyzer interface {
	Analyze(ctx context.Context, message string) (string, error)
}

// Client is a model backend that can do both.
type Client interface {
	ScriptGenerator
	Analyzer
}

var (
	// ErrEmptyDescription is returned for a blank script description.
	ErrEmptyDescription = errors.New("description is empty")

	// ErrMissingCredential is returned when no API key is configured.
	ErrMissingCredential = errors.New("API key is missing: set AUTOMAT_API_KEY or ai.api_key in settings")

	// ErrGenerationFailed wraps a failed script generation request.
	ErrGenerationFailed = errors.New("failed to generate script")

	// ErrNotFailed is returned when analysis is requested for a job that is
	// not in ERROR.
	ErrNotFailed = errors.New("job has not failed")

	// ErrNoErrorLog is returned when the log feed holds no ERROR entry.
	ErrNoErrorLog = errors.New("no error in the log feed")
)

// Messages shown in place of an analysis.
const (
	MsgMissingKey     = "API Key missing. Cannot analyze logs."
	MsgUnreachable    = "Unable to contact AI service."
	MsgAnalysisFailed = "Analysis failed."

	// EmptyScript is returned when the model replies with nothing.
	EmptyScript = "# Error generating script"

	// MsgGenerateFailed is the operator-facing text for any generation error.
	MsgGenerateFailed = "Failed to generate script. Ensure API_KEY is set."
)

// QuickPrompt is a canned script description.
type QuickPrompt struct {
	Label       string
	Description string
}

// QuickPrompts returns the canned descriptions offered next to the prompt.
func QuickPrompts() []QuickPrompt {
	return []QuickPrompt{
		{Label: "Registry Key Check", Description: `Check if registry key HKLM\SOFTWARE\Google\Chrome exists`},
		{Label: "File Version Check", Description: `Check if C:\App\bin.exe version is > 1.2`},
		{Label: "MSI Product Code", Description: "Check for MSI product code {1234-5678}"},
	}
}

func scriptPrompt(description string) string {
	return fmt.Sprintf(`Write a concise PowerShell script to be used as a Detection Rule for Microsoft Intune.

Requirement: %s

The script must:
1. Check for the condition.
2. Write "Detected" to host if found.
3. Exit with code 0 if found.
4. Exit with code 1 if not found.

Output ONLY the PowerShell code. Do not wrap in markdown backticks.`, description)
}

func analysisPrompt(message string) string {
	return fmt.Sprintf(`I am using the Microsoft Graph API and IntuneWinAppUtil.exe to upload apps to Intune.
I received this error: %q

Explain what went wrong and suggest a fix in 2 sentences.`, message)
}
