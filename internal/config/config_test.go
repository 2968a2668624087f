package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automat-io/automat/internal/models"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	return dir
}

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestSaveYAMLIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.yaml")

	require.NoError(t, SaveYAML(path, map[string]int{"a": 1}))
	var got map[string]int
	require.NoError(t, LoadYAML(path, &got))
	assert.Equal(t, 1, got["a"])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLoadYAMLOrDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	s, err := LoadYAMLOrDefault(path, models.NewSettings)
	require.NoError(t, err)
	assert.Equal(t, models.NewSettings(), s)

	// Keys present in the file win; missing keys keep their defaults.
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  tick_step: 10\n  fail_names: []\n"), 0644))
	s, err = LoadYAMLOrDefault(path, models.NewSettings)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Simulation.TickStep)
	assert.Empty(t, s.Simulation.FailNames)
	assert.NotNil(t, s.Simulation.FailNames)
	assert.Equal(t, 600*time.Millisecond, s.Simulation.TickInterval)

	require.NoError(t, os.WriteFile(path, []byte("simulation: [\n"), 0644))
	_, err = LoadYAMLOrDefault(path, models.NewSettings)
	assert.Error(t, err)
}

func TestLoadSettingsEnv(t *testing.T) {
	home := useTempHome(t)
	unsetEnv(t, EnvAPIKey, EnvLegacyAPIKey, EnvModel, EnvBaseURL, EnvTickInterval)

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Empty(t, s.AI.APIKey)

	require.NoError(t, os.WriteFile(filepath.Join(home, EnvFileName), []byte("API_KEY=from-dotenv\n"), 0600))
	s, err = LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", s.AI.APIKey)

	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvModel, "gemini-2.5-pro")
	t.Setenv(EnvTickInterval, "50ms")
	s, err = LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.AI.APIKey)
	assert.Equal(t, "gemini-2.5-pro", s.AI.Model)
	assert.Equal(t, 50*time.Millisecond, s.Simulation.TickInterval)

	t.Setenv(EnvTickInterval, "soon")
	_, err = LoadSettings()
	assert.Error(t, err)
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	useTempHome(t)
	unsetEnv(t, EnvAPIKey, EnvLegacyAPIKey, EnvModel, EnvBaseURL, EnvTickInterval)

	s := models.NewSettings()
	s.AI.Model = "custom-model"
	require.NoError(t, SaveSettings(s))

	path, err := GlobalSettingsFile()
	require.NoError(t, err)
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())

	got, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "custom-model", got.AI.Model)
}

func TestCatalog(t *testing.T) {
	useTempHome(t)

	jobs, err := LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultJobs(), jobs)

	jobs[0].Status = models.JobStatusSuccess
	jobs[0].Progress = 100
	require.NoError(t, SaveCatalog(jobs))

	again, err := LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, jobs, again)
}

func TestValidateCatalog(t *testing.T) {
	ok := models.Job{ID: "1", Status: models.JobStatusIdle}

	tests := []struct {
		name string
		jobs []models.Job
		err  bool
	}{
		{"valid", []models.Job{ok}, false},
		{"empty", nil, false},
		{"missing id", []models.Job{{Status: models.JobStatusIdle}}, true},
		{"duplicate id", []models.Job{ok, ok}, true},
		{"progress out of range", []models.Job{{ID: "1", Status: models.JobStatusIdle, Progress: 101}}, true},
		{"missing status", []models.Job{{ID: "1"}}, true},
		{"unknown status", []models.Job{{ID: "1", Status: "QUEUED"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCatalog(tt.jobs)
			if tt.err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTenantConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg, err := LoadTenantConfig(path)
	require.NoError(t, err)
	assert.Equal(t, models.NewConfig(), cfg)

	cfg.TenantID = "contoso"
	cfg.ClientSecret = "hunter2"
	require.NoError(t, SaveTenantConfig(path, cfg))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())

	got, err := LoadTenantConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDaemonInfo(t *testing.T) {
	useTempHome(t)

	info, err := LoadDaemonInfo()
	require.NoError(t, err)
	assert.Nil(t, info)

	running, _, err := IsDaemonRunning()
	require.NoError(t, err)
	assert.False(t, running)

	require.NoError(t, SaveDaemonInfo(models.NewDaemonInfo("127.0.0.1", 4312, os.Getpid())))
	running, info, err = IsDaemonRunning()
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, 4312, info.Port)

	require.NoError(t, RemoveDaemonInfo())
	require.NoError(t, RemoveDaemonInfo(), "removing twice is fine")
	info, err = LoadDaemonInfo()
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestRunLogs(t *testing.T) {
	home := useTempHome(t)

	runs, err := ListRunLogs()
	require.NoError(t, err)
	assert.Empty(t, runs)

	t0 := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	entries := []models.LogEntry{
		models.NewLogEntry("a", models.LogLevelInfo, "System initialization complete.", t0),
		models.NewLogEntry("b", models.LogLevelError, "FATAL: 7-Zip upload rejected. 401 Unauthorized.", t0.Add(time.Second)),
	}

	_, err = WriteRunLog(models.RunLog{RunID: "older", StartedAt: t0.Format(time.RFC3339), Status: "completed"}, entries)
	require.NoError(t, err)
	header, err := WriteRunLog(models.RunLog{RunID: "newer", StartedAt: t0.Add(time.Hour).Format(time.RFC3339), Failed: 1, Status: "interrupted"}, entries)
	require.NoError(t, err)
	assert.NotEmpty(t, header.EndedAt)

	// The dashboard's own log file is not a run.
	require.NoError(t, os.WriteFile(filepath.Join(home, LogsDirName, TUILogFileName), []byte("time=... level=INFO\n"), 0644))

	runs, err = ListRunLogs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "newer", runs[0].RunID)
	assert.Equal(t, 1, runs[0].Failed)
	assert.Equal(t, "interrupted", runs[0].Status)

	got, body, err := ReadRunLog("older")
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	assert.Contains(t, body, "[09:30:00] INFO    System initialization complete.")
	assert.Contains(t, body, "[09:30:01] ERROR   FATAL: 7-Zip upload rejected. 401 Unauthorized.")

	_, _, err = ReadRunLog("missing")
	assert.Error(t, err)
}

func TestRunLogsSameSecondOrderedByWriteTime(t *testing.T) {
	home := useTempHome(t)
	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC).Format(time.RFC3339)

	for _, id := range []string{"b-first", "a-second"} {
		_, err := WriteRunLog(models.RunLog{RunID: id, StartedAt: started, Status: "completed"}, nil)
		require.NoError(t, err)
	}
	logsDir := filepath.Join(home, LogsDirName)
	base := time.Date(2026, 3, 14, 9, 31, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(logsDir, "b-first.log"), base, base))
	require.NoError(t, os.Chtimes(filepath.Join(logsDir, "a-second.log"), base.Add(time.Second), base.Add(time.Second)))

	for i := 0; i < 5; i++ {
		runs, err := ListRunLogs()
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "a-second", runs[0].RunID)
		assert.Equal(t, "b-first", runs[1].RunID)
	}
}
