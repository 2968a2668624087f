package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/automat-io/automat/internal/apperror"
	"github.com/automat-io/automat/internal/assistant"
	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/daemon/store"
	"github.com/automat-io/automat/internal/models"
	"github.com/automat-io/automat/internal/settingsclient"
)

const requestTimeout = 5 * time.Second

// ConfigSource loads and saves the tenant configuration.
type ConfigSource interface {
	settingsclient.Loader
	settingsclient.Saver
}

// fallbackSource talks to the daemon when one is running and reads the
// config file directly otherwise.
type fallbackSource struct {
	logger *slog.Logger
}

func newConfigSource(logger *slog.Logger) ConfigSource {
	return &fallbackSource{logger: logger}
}

func (s *fallbackSource) LoadConfig(ctx context.Context) (models.Config, error) {
	if c, err := settingsclient.FromDaemon(); err == nil {
		cfg, err := c.LoadConfig(ctx)
		if !unreachable(err) {
			return cfg, err
		}
		s.logger.Warn("daemon unreachable, using config file", "error", err)
	}
	st, err := s.fileStore()
	if err != nil {
		return models.Config{}, err
	}
	return st.Load(ctx)
}

func (s *fallbackSource) SaveConfig(ctx context.Context, cfg models.Config) (models.Config, error) {
	if c, err := settingsclient.FromDaemon(); err == nil {
		saved, err := c.SaveConfig(ctx, cfg)
		if !unreachable(err) {
			return saved, err
		}
		s.logger.Warn("daemon unreachable, using config file", "error", err)
	}
	st, err := s.fileStore()
	if err != nil {
		return models.Config{}, err
	}
	return st.Save(ctx, cfg)
}

func (s *fallbackSource) fileStore() (*store.FileStore, error) {
	if err := config.EnsureGlobalDir(); err != nil {
		return nil, err
	}
	path, err := config.GlobalConfigFile()
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(path, s.logger), nil
}

func unreachable(err error) bool {
	if err == nil {
		return false
	}
	status, _ := apperror.Status(err)
	return status == http.StatusServiceUnavailable
}

func tickCmd(interval time.Duration, run int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{run: run}
	})
}

func loadConfigCmd(src ConfigSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cfg, err := src.LoadConfig(ctx)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load settings: %w", err)}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

func saveConfigCmd(src ConfigSource, cfg models.Config) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		saved, err := src.SaveConfig(ctx, cfg)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to save settings: %w", err)}
		}
		return ConfigSavedMsg{Config: saved}
	}
}

func generateScriptCmd(svc *assistant.Service, description string) tea.Cmd {
	return func() tea.Msg {
		script, err := svc.GenerateScript(context.Background(), description)
		return ScriptGeneratedMsg{Script: script, Err: err}
	}
}

func analyzeJobCmd(svc *assistant.Service, job models.Job, feed []models.LogEntry) tea.Cmd {
	return func() tea.Msg {
		analysis, err := svc.AnalyzeJob(context.Background(), job, feed)
		if err != nil {
			if errors.Is(err, assistant.ErrNoErrorLog) {
				return AnalysisMsg{JobID: job.ID, Analysis: "No error in the log feed to analyze."}
			}
			return ErrorMsg{Err: err}
		}
		return AnalysisMsg{JobID: job.ID, Analysis: analysis}
	}
}

func listRunsCmd() tea.Cmd {
	return func() tea.Msg {
		runs, err := config.ListRunLogs()
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to list runs: %w", err)}
		}
		return RunsLoadedMsg{Runs: runs}
	}
}

func readRunCmd(runID string) tea.Cmd {
	return func() tea.Msg {
		run, content, err := config.ReadRunLog(runID)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to read run: %w", err)}
		}
		return RunContentMsg{Run: run, Content: content}
	}
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func clearSavedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearSavedMsg{}
	})
}
