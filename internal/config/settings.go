package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/automat-io/automat/internal/models"
)

// Environment variables that override settings.yaml.
const (
	EnvAPIKey       = "AUTOMAT_API_KEY"
	EnvLegacyAPIKey = "API_KEY"
	EnvModel        = "AUTOMAT_MODEL"
	EnvBaseURL      = "AUTOMAT_BASE_URL"
	EnvTickInterval = "AUTOMAT_TICK_INTERVAL"
)

// LoadSettings loads the global settings from ~/.automat/settings.yaml,
// then applies ~/.automat/.env and process environment overrides.
// If the file doesn't exist, defaults are used.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}

	envPath, err := GlobalEnvFile()
	if err != nil {
		return nil, err
	}
	if err := loadEnvFile(envPath); err != nil {
		return nil, err
	}

	return ApplyEnv(settings)
}

// SaveSettings saves the global settings to ~/.automat/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return saveYAMLMode(path, settings, 0600)
}

// ApplyEnv overlays environment variables onto settings.
func ApplyEnv(settings *models.Settings) (*models.Settings, error) {
	if v := firstEnv(EnvAPIKey, EnvLegacyAPIKey); v != "" {
		settings.AI.APIKey = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		settings.AI.Model = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		settings.AI.BaseURL = v
	}
	if v := os.Getenv(EnvTickInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvTickInterval, v, err)
		}
		settings.Simulation.TickInterval = d
	}
	return settings, nil
}

// loadEnvFile reads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone. A missing file is not an error.
func loadEnvFile(path string) error {
	if !FileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
