// Package tui implements the interactive dashboard.
package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/automat-io/automat/internal/assistant"
	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/logger"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run launches the dashboard. Log output goes to ~/.automat/logs/automat.log
// so it does not corrupt the alt screen.
func Run(level slog.Level) error {
	if err := config.EnsureGlobalLogsDir(); err != nil {
		return err
	}
	logsDir, err := config.GlobalLogsDir()
	if err != nil {
		return err
	}
	log, f, err := logger.NewFile(logger.Config{Level: level}, filepath.Join(logsDir, config.TUILogFileName))
	if err != nil {
		return err
	}
	defer f.Close()

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	jobs, err := config.LoadCatalog()
	if err != nil {
		return err
	}

	ref := &programRef{}
	model := NewModel(Options{
		Jobs:      jobs,
		Settings:  *settings,
		Assistant: assistant.NewServiceFromSettings(settings.AI, log.With("component", "assistant")),
		Configs:   newConfigSource(log),
		Logger:    log,
		Program:   ref,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	ref.Set(p)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.saveTranscript()
	}
	return err
}
