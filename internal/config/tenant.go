package config

import (
	"github.com/automat-io/automat/internal/models"
)

// LoadTenantConfig loads the tenant configuration from path.
// If the file doesn't exist, defaults are returned.
func LoadTenantConfig(path string) (*models.Config, error) {
	return LoadYAMLOrDefault(path, models.NewConfig)
}

// SaveTenantConfig writes the tenant configuration to path. The file holds
// the client secret and is created owner-readable only.
func SaveTenantConfig(path string, cfg *models.Config) error {
	return saveYAMLMode(path, cfg, 0600)
}
