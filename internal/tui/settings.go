package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/automat-io/automat/internal/models"
)

// SettingsField is a single field in the settings form.
type SettingsField struct {
	Label  string
	Key    string // Config JSON key
	Value  string
	Secret bool
}

// SettingsForm manages the settings tab.
type SettingsForm struct {
	cfg     models.Config
	fields  []SettingsField
	loaded  bool
	cursor  int
	editing bool
	reveal  bool
	input   textinput.Model
	width   int
	height  int
}

// NewSettingsForm creates a new settings form.
func NewSettingsForm() *SettingsForm {
	ti := textinput.New()
	ti.CharLimit = 256
	return &SettingsForm{
		input: ti,
	}
}

// Load populates fields from cfg.
func (s *SettingsForm) Load(cfg models.Config) {
	s.cfg = cfg
	s.loaded = true
	s.fields = []SettingsField{
		{Label: "Tenant ID", Key: "intune_tenant_id", Value: cfg.TenantID},
		{Label: "Client ID", Key: "intune_client_id", Value: cfg.ClientID},
		{Label: "Client Secret", Key: "intune_client_secret", Value: cfg.ClientSecret, Secret: true},
		{Label: "Certificate Thumbprint", Key: "powershell_cert_thumbprint", Value: cfg.CertThumbprint},
		{Label: "Default Logo Path", Key: "default_logo_path", Value: cfg.DefaultLogoPath},
		{Label: "Temp Package Dir", Key: "temp_package_dir", Value: cfg.TempPackageDir},
		{Label: "WinTuner Download Dir", Key: "wintuner_download_dir", Value: cfg.WintunerDownloadDir},
		{Label: "Required Permissions", Key: "required_permissions", Value: strings.Join(cfg.RequiredPermissions, ", ")},
	}
}

// Config returns the configuration the form currently holds.
func (s *SettingsForm) Config() models.Config {
	return s.cfg
}

// SetSize updates dimensions.
func (s *SettingsForm) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.input.Width = width - 32
}

// MoveUp moves cursor up.
func (s *SettingsForm) MoveUp() {
	if !s.editing && s.cursor > 0 {
		s.cursor--
	}
}

// MoveDown moves cursor down.
func (s *SettingsForm) MoveDown() {
	if !s.editing && s.cursor < len(s.fields)-1 {
		s.cursor++
	}
}

// ToggleReveal shows or hides the client secret.
func (s *SettingsForm) ToggleReveal() {
	s.reveal = !s.reveal
	s.applyEchoMode()
}

func (s *SettingsForm) applyEchoMode() {
	s.input.EchoMode = textinput.EchoNormal
	if s.editing && s.fields[s.cursor].Secret && !s.reveal {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
}

// StartEdit begins inline editing of the current field.
func (s *SettingsForm) StartEdit() bool {
	if s.cursor < 0 || s.cursor >= len(s.fields) {
		return false
	}
	s.editing = true
	s.input.SetValue(s.fields[s.cursor].Value)
	s.input.CursorEnd()
	s.input.Focus()
	s.applyEchoMode()
	return true
}

// FinishEdit confirms the current edit and reports whether the
// configuration changed.
func (s *SettingsForm) FinishEdit() (changed bool, cfg models.Config) {
	if !s.editing {
		return false, s.cfg
	}
	s.editing = false
	s.input.Blur()

	f := &s.fields[s.cursor]
	newVal := strings.TrimSpace(s.input.Value())
	if newVal == f.Value {
		return false, s.cfg
	}
	f.Value = newVal
	setField(&s.cfg, f.Key, newVal)
	if f.Key == "required_permissions" {
		f.Value = strings.Join(s.cfg.RequiredPermissions, ", ")
	}
	return true, s.cfg
}

// CancelEdit cancels the current edit.
func (s *SettingsForm) CancelEdit() {
	s.editing = false
	s.input.Blur()
}

// IsEditing returns whether a field is being edited.
func (s *SettingsForm) IsEditing() bool {
	return s.editing
}

// InputModel returns the text input model for Update forwarding.
func (s *SettingsForm) InputModel() *textinput.Model {
	return &s.input
}

// View renders the settings form.
func (s *SettingsForm) View() string {
	if !s.loaded {
		return lipgloss.NewStyle().Foreground(colorDim).Render("Loading settings...")
	}

	var lines []string
	for i, f := range s.fields {
		label := settingsLabelStyle.Render(f.Label + ":")

		var line string
		if s.editing && i == s.cursor {
			line = label + " " + s.input.View()
		} else {
			val := f.Value
			switch {
			case val == "":
				val = lipgloss.NewStyle().Foreground(colorDim).Render("(empty)")
			case f.Secret && !s.reveal:
				val = settingsValueStyle.Render(strings.Repeat("•", 8))
			default:
				val = settingsValueStyle.Render(val)
			}
			line = label + " " + val
		}

		if i == s.cursor {
			line = settingsCursorStyle.Width(s.width).Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", lipgloss.NewStyle().Foreground(colorDim).Render(
		"Changes are saved as soon as a field is confirmed."))
	return strings.Join(lines, "\n")
}

func setField(cfg *models.Config, key, value string) {
	switch key {
	case "intune_tenant_id":
		cfg.TenantID = value
	case "intune_client_id":
		cfg.ClientID = value
	case "intune_client_secret":
		cfg.ClientSecret = value
	case "powershell_cert_thumbprint":
		cfg.CertThumbprint = value
	case "default_logo_path":
		cfg.DefaultLogoPath = value
	case "temp_package_dir":
		cfg.TempPackageDir = value
	case "wintuner_download_dir":
		cfg.WintunerDownloadDir = value
	case "required_permissions":
		perms := []string{}
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				perms = append(perms, p)
			}
		}
		cfg.RequiredPermissions = perms
	}
}
