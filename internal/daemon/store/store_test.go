package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automat-io/automat/internal/logger"
	"github.com/automat-io/automat/internal/models"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "config.yaml"), logger.Discard())

	cfg, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, *models.NewConfig(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	s := NewFileStore(path, logger.Discard())
	ctx := context.Background()

	in := *models.NewConfig()
	in.TenantID = "tenant-1"
	in.ClientSecret = "s3cret"
	in.RequiredPermissions = []string{"Group.Read.All"}

	saved, err := s.Save(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, in, saved)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// a fresh store reads it back from disk
	got, err := NewFileStore(path, logger.Discard()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestLoadReturnsCopies(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "config.yaml"), logger.Discard())
	ctx := context.Background()

	a, err := s.Load(ctx)
	require.NoError(t, err)
	a.RequiredPermissions[0] = "changed"

	b, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "DeviceManagementApps.ReadWrite.All", b.RequiredPermissions[0])
}

func TestInvalidatePicksUpExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	s := NewFileStore(path, logger.Discard())
	ctx := context.Background()

	_, err := s.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("intune_tenant_id: edited\n"), 0600))

	cached, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached.TenantID)

	s.Invalidate()
	fresh, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "edited", fresh.TenantID)
	assert.Equal(t, "temp_packages", fresh.TempPackageDir)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("required_permissions: {"), 0600))

	_, err := NewFileStore(path, logger.Discard()).Load(context.Background())
	assert.Error(t, err)
}
