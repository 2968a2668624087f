// Package models contains shared data structures used across the application.
package models

// JobStatus represents where an application package is in its lifecycle.
type JobStatus string

const (
	JobStatusIdle      JobStatus = "IDLE"
	JobStatusPackaging JobStatus = "PACKAGING"
	JobStatusUploading JobStatus = "UPLOADING"
	JobStatusSuccess   JobStatus = "SUCCESS"
	JobStatusError     JobStatus = "ERROR"
)

// Job is one application package tracked through packaging and upload.
// Entries in apps.yaml decode into this type.
type Job struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Version     string    `yaml:"version" json:"version"`
	Size        string    `yaml:"size" json:"size"`
	LastUpdated string    `yaml:"last_updated" json:"last_updated"`
	Status      JobStatus `yaml:"status" json:"status"`
	Progress    int       `yaml:"progress" json:"progress"`
}

// IsActive returns true while the job is packaging or uploading.
func (j Job) IsActive() bool {
	return j.Status == JobStatusPackaging || j.Status == JobStatusUploading
}

// IsTerminal returns true once the job finished, successfully or not.
func (j Job) IsTerminal() bool {
	return j.Status == JobStatusSuccess || j.Status == JobStatusError
}

// Catalog represents the apps.yaml file listing the packaging queue.
type Catalog struct {
	Version int   `yaml:"version"`
	Apps    []Job `yaml:"apps"`
}

// NewCatalog returns the default packaging queue.
func NewCatalog() *Catalog {
	return &Catalog{
		Version: 1,
		Apps:    DefaultJobs(),
	}
}

// DefaultJobs returns the seeded application list.
func DefaultJobs() []Job {
	return []Job{
		{ID: "1", Name: "Google Chrome", Version: "119.0.6045", Status: JobStatusIdle, Progress: 0, LastUpdated: "Today", Size: "105 MB"},
		{ID: "2", Name: "7-Zip", Version: "23.01", Status: JobStatusIdle, Progress: 0, LastUpdated: "Today", Size: "1.5 MB"},
		{ID: "3", Name: "Adobe Reader DC", Version: "2023.006", Status: JobStatusError, Progress: 45, LastUpdated: "Yesterday", Size: "240 MB"},
		{ID: "4", Name: "VLC Media Player", Version: "3.0.18", Status: JobStatusSuccess, Progress: 100, LastUpdated: "Yesterday", Size: "40 MB"},
	}
}
