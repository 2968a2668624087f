package models

import "time"

// AIConfig holds settings for the hosted generative model.
type AIConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"` // OpenAI-compatible endpoint
	Timeout time.Duration `yaml:"timeout"`
}

// SimulationConfig tunes the simulated packaging run.
type SimulationConfig struct {
	TickInterval       time.Duration `yaml:"tick_interval"`
	TickStep           int           `yaml:"tick_step"`
	ChatterProbability float64       `yaml:"chatter_probability"`
	FailNames          []string      `yaml:"fail_names"` // Jobs rejected at the end of a run
}

// AppearanceConfig holds appearance settings.
type AppearanceConfig struct {
	Theme string `yaml:"theme"` // "system" | "light" | "dark"
}

// Settings represents global application settings.
// This corresponds to ~/.automat/settings.yaml.
type Settings struct {
	Version    int              `yaml:"version"`
	AI         AIConfig         `yaml:"ai"`
	Simulation SimulationConfig `yaml:"simulation"`
	Appearance AppearanceConfig `yaml:"appearance"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		AI: AIConfig{
			APIKey:  "",
			Model:   "gemini-3-flash-preview",
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai/",
			Timeout: 60 * time.Second,
		},
		Simulation: SimulationConfig{
			TickInterval:       600 * time.Millisecond,
			TickStep:           5,
			ChatterProbability: 0.4,
			FailNames:          []string{"7-Zip"},
		},
		Appearance: AppearanceConfig{
			Theme: "dark",
		},
	}
}
