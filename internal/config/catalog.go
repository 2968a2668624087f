package config

import (
	"fmt"

	"github.com/automat-io/automat/internal/models"
)

// LoadCatalog loads the packaging queue from ~/.automat/apps.yaml.
// If the file doesn't exist, the seeded application list is returned.
func LoadCatalog() ([]models.Job, error) {
	path, err := GlobalCatalogFile()
	if err != nil {
		return nil, err
	}
	catalog, err := LoadYAMLOrDefault(path, models.NewCatalog)
	if err != nil {
		return nil, err
	}
	if err := validateCatalog(catalog.Apps); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return catalog.Apps, nil
}

// SaveCatalog writes the packaging queue to ~/.automat/apps.yaml.
func SaveCatalog(jobs []models.Job) error {
	path, err := GlobalCatalogFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, &models.Catalog{Version: 1, Apps: jobs})
}

func validateCatalog(jobs []models.Job) error {
	seen := make(map[string]bool, len(jobs))
	for i, j := range jobs {
		if j.ID == "" {
			return fmt.Errorf("app %d has no id", i+1)
		}
		if seen[j.ID] {
			return fmt.Errorf("duplicate app id %q", j.ID)
		}
		seen[j.ID] = true
		if j.Progress < 0 || j.Progress > 100 {
			return fmt.Errorf("app %q progress %d out of range", j.ID, j.Progress)
		}
		switch j.Status {
		case models.JobStatusIdle, models.JobStatusPackaging, models.JobStatusUploading,
			models.JobStatusSuccess, models.JobStatusError:
		case "":
			return fmt.Errorf("app %q has no status", j.ID)
		default:
			return fmt.Errorf("app %q has unknown status %q", j.ID, j.Status)
		}
	}
	return nil
}
