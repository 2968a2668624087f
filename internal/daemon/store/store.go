// Package store persists the tenant configuration served by the daemon.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/automat-io/automat/internal/apperror"
	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/models"
)

// Store loads and saves the tenant configuration.
type Store interface {
	Load(ctx context.Context) (models.Config, error)
	Save(ctx context.Context, cfg models.Config) (models.Config, error)
}

// FileStore keeps the configuration in a YAML file and caches the last
// value read or written.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu     sync.RWMutex
	cached *models.Config
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored configuration on top of the defaults.
func (s *FileStore) Load(_ context.Context) (models.Config, error) {
	s.mu.RLock()
	if s.cached != nil {
		cfg := clone(*s.cached)
		s.mu.RUnlock()
		return cfg, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil {
		cfg, err := config.LoadTenantConfig(s.path)
		if err != nil {
			return models.Config{}, apperror.Wrap(apperror.Internal, "failed to read config", err)
		}
		s.cached = cfg
	}
	return clone(*s.cached), nil
}

// Save writes cfg as given and returns what was stored.
func (s *FileStore) Save(_ context.Context, cfg models.Config) (models.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := clone(cfg)
	if err := config.SaveTenantConfig(s.path, &stored); err != nil {
		return models.Config{}, apperror.Wrap(apperror.Internal, "failed to save config", err)
	}
	s.cached = &stored
	s.logger.Info("config saved", "path", s.path)
	return clone(stored), nil
}

// Invalidate drops the cache so the next Load reads the file again. The
// daemon calls it when the file is edited by hand.
func (s *FileStore) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	s.logger.Info("config reloaded from disk", "path", s.path)
}

func clone(cfg models.Config) models.Config {
	if cfg.RequiredPermissions != nil {
		cfg.RequiredPermissions = append([]string(nil), cfg.RequiredPermissions...)
	}
	return cfg
}

var _ Store = (*FileStore)(nil)
