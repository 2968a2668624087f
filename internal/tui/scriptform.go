package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/automat-io/automat/internal/assistant"
)

// ScriptForm is the Assistant tab: a description box and the generated
// detection script.
type ScriptForm struct {
	promptArea textarea.Model
	output     viewport.Model
	script     string
	quick      int // Index of the next quick prompt
	generating bool
	width      int
	height     int
}

// NewScriptForm creates a new script form.
func NewScriptForm() *ScriptForm {
	pa := textarea.New()
	pa.Placeholder = "e.g. Check if registry key HKLM\\Software\\Contoso\\App exists"
	pa.ShowLineNumbers = false
	pa.SetHeight(3)
	pa.CharLimit = 1000

	return &ScriptForm{
		promptArea: pa,
		output:     viewport.New(60, 10),
	}
}

// SetSize updates dimensions.
func (sf *ScriptForm) SetSize(width, height int) {
	sf.width = width
	sf.height = height
	sf.promptArea.SetWidth(width)
	// description label + textarea + quick prompts + spacer + output label
	h := height - sf.promptArea.Height() - 6
	if h < 1 {
		h = 1
	}
	sf.output.Width = width
	sf.output.Height = h
}

// Focus starts editing the description.
func (sf *ScriptForm) Focus() {
	sf.promptArea.Focus()
}

// Blur stops editing the description.
func (sf *ScriptForm) Blur() {
	sf.promptArea.Blur()
}

// IsEditing returns whether the description box has focus.
func (sf *ScriptForm) IsEditing() bool {
	return sf.promptArea.Focused()
}

// PromptArea returns the textarea model for update forwarding.
func (sf *ScriptForm) PromptArea() *textarea.Model {
	return &sf.promptArea
}

// Description returns the trimmed description.
func (sf *ScriptForm) Description() string {
	return strings.TrimSpace(sf.promptArea.Value())
}

// NextQuickPrompt fills the description with the next canned prompt.
func (sf *ScriptForm) NextQuickPrompt() {
	prompts := assistant.QuickPrompts()
	p := prompts[sf.quick%len(prompts)]
	sf.quick++
	sf.promptArea.SetValue(p.Description)
}

// SetGenerating marks a request as in flight.
func (sf *ScriptForm) SetGenerating(v bool) {
	sf.generating = v
}

// Generating reports whether a request is in flight.
func (sf *ScriptForm) Generating() bool {
	return sf.generating
}

// SetScript shows a generated script.
func (sf *ScriptForm) SetScript(script string) {
	sf.generating = false
	sf.script = script
	sf.output.SetContent(scriptStyle.Render(script))
	sf.output.GotoTop()
}

// Script returns the last generated script.
func (sf *ScriptForm) Script() string {
	return sf.script
}

// ScrollUp scrolls the script output.
func (sf *ScriptForm) ScrollUp() { sf.output.LineUp(1) }

// ScrollDown scrolls the script output.
func (sf *ScriptForm) ScrollDown() { sf.output.LineDown(1) }

// View renders the assistant tab.
func (sf *ScriptForm) View() string {
	parts := make([]string, 0, 8)

	label := lipgloss.NewStyle().Bold(true).Render("Detection logic:")
	parts = append(parts, label, sf.promptArea.View())

	names := make([]string, 0, 3)
	for i, p := range assistant.QuickPrompts() {
		names = append(names, fmt.Sprintf("%d) %s", i+1, p.Label))
	}
	parts = append(parts, hintStyle.Render("p cycles quick prompts: ")+quickPromptStyle.Render(strings.Join(names, "  ")), "")

	label = lipgloss.NewStyle().Bold(true).Render("Generated PowerShell:")
	parts = append(parts, label)

	switch {
	case sf.generating:
		parts = append(parts, lipgloss.NewStyle().Foreground(colorYellow).Render("Generating..."))
	case sf.script == "":
		parts = append(parts, lipgloss.NewStyle().Foreground(colorDim).Render("Generated script will appear here..."))
	default:
		parts = append(parts, sf.output.View())
	}

	return strings.Join(parts, "\n")
}
