// Package cmd implements the automatd command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/daemon/server"
	"github.com/automat-io/automat/internal/daemon/store"
	"github.com/automat-io/automat/internal/daemon/watcher"
	"github.com/automat-io/automat/internal/logger"
	"github.com/automat-io/automat/internal/models"
)

const shutdownTimeout = 10 * time.Second

var (
	flagPort      int
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:          "automatd",
	Short:        "AutoMat configuration daemon",
	Long:         `automatd serves the tenant configuration to the AutoMat CLI and TUI over a local HTTP API.`,
	SilenceUsage: true,
	RunE:         runDaemon,
}

// Execute runs the daemon CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().IntVar(&flagPort, "port", 0, "Port to listen on (0 for dynamic allocation)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	level, err := logger.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Level: level, Format: flagLogFormat}).With("component", "automatd")

	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running on port %d (PID %d)", info.Port, info.PID)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	globalDir, err := config.GlobalDir()
	if err != nil {
		return err
	}
	configPath, err := config.GlobalConfigFile()
	if err != nil {
		return err
	}

	st := store.NewFileStore(configPath, log)
	srv, err := server.New(ctx, flagPort, st, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	w, err := watcher.New(log)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(globalDir); err != nil {
		log.Warn("failed to watch global dir", "error", err)
	}
	defer w.Stop()

	daemonInfo := models.NewDaemonInfo("127.0.0.1", srv.Port(), os.Getpid())
	if err := config.SaveDaemonInfo(daemonInfo); err != nil {
		return fmt.Errorf("failed to write daemon info: %w", err)
	}
	defer func() {
		if err := config.RemoveDaemonInfo(); err != nil {
			log.Error("failed to remove daemon info", "error", err)
		}
	}()

	log.Info("daemon started", "port", srv.Port(), "pid", os.Getpid())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		handleEvents(gctx, w.Events(), st, log)
		return nil
	})

	err = g.Wait()
	log.Info("daemon stopped")
	return err
}

// handleEvents applies out-of-band file edits until ctx is done.
func handleEvents(ctx context.Context, events <-chan watcher.Event, st *store.FileStore, log *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev.Type {
			case watcher.EventConfigChanged:
				st.Invalidate()
			case watcher.EventSettingsChanged:
				log.Info("settings changed on disk", "path", ev.Path)
			case watcher.EventCatalogChanged:
				if _, err := config.LoadCatalog(); err != nil {
					log.Warn("app catalog is invalid", "path", ev.Path, "error", err)
				} else {
					log.Info("app catalog changed", "path", ev.Path)
				}
			}
		}
	}
}
