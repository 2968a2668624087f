package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/logger"
	"github.com/automat-io/automat/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		want   EventType
		wantOK bool
	}{
		{"/home/u/.automat/config.yaml", EventConfigChanged, true},
		{"/home/u/.automat/settings.yaml", EventSettingsChanged, true},
		{"/home/u/.automat/apps.yaml", EventCatalogChanged, true},
		{"/home/u/.automat/daemon.yaml", 0, false},
		{"/home/u/.automat/.config.yaml.12345", 0, false},
	}

	for _, tt := range tests {
		got, ok := classify(tt.path)
		assert.Equal(t, tt.wantOK, ok, tt.path)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, tt.path)
		}
	}
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher event")
		return Event{}
	}
}

func TestWatcherReportsConfigWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := New(logger.Discard())
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(dir))

	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, config.SaveTenantConfig(path, models.NewConfig()))

	ev := waitEvent(t, w)
	assert.Equal(t, EventConfigChanged, ev.Type)
	assert.Equal(t, path, ev.Path)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := New(logger.Discard())
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(dir))

	path := filepath.Join(dir, config.SettingsFileName)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0600))
	}

	ev := waitEvent(t, w)
	assert.Equal(t, EventSettingsChanged, ev.Type)

	select {
	case extra := <-w.Events():
		t.Fatalf("unexpected second event: %+v", extra)
	case <-time.After(3 * DefaultDebounce):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(logger.Discard())
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(3 * DefaultDebounce):
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, err := New(logger.Discard())
	require.NoError(t, err)
	require.NoError(t, w.Start(t.TempDir()))
	w.Stop()
	w.Stop()
}
