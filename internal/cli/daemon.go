package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/models"
)

const (
	daemonBinary      = "automatd"
	daemonPollEvery   = 100 * time.Millisecond
	daemonWaitTimeout = 5 * time.Second
)

var errDaemonTimeout = errors.New("timed out waiting for the daemon")

// EnsureDaemon returns the running daemon, spawning automatd when there is none.
func EnsureDaemon(ctx context.Context) (*models.DaemonInfo, error) {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return nil, fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return info, nil
	}
	return spawnDaemon(ctx)
}

func spawnDaemon(ctx context.Context) (*models.DaemonInfo, error) {
	bin, err := locateDaemon()
	if err != nil {
		return nil, err
	}

	// The daemon must outlive this command, so it is not tied to ctx.
	proc := exec.Command(bin)
	if err := proc.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", daemonBinary, err)
	}
	_ = proc.Process.Release()

	var info *models.DaemonInfo
	err = pollDaemon(ctx, func() bool {
		running, i, err := config.IsDaemonRunning()
		info = i
		return err == nil && running
	})
	if err != nil {
		return nil, fmt.Errorf("%s did not come up: %w", daemonBinary, err)
	}
	return info, nil
}

// stopDaemon sends SIGTERM and waits for daemon.yaml to go away.
func stopDaemon(ctx context.Context, info *models.DaemonInfo) error {
	proc, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to signal daemon: %w", err)
	}
	return pollDaemon(ctx, func() bool {
		running, _, err := config.IsDaemonRunning()
		return err == nil && !running
	})
}

// pollDaemon checks cond until it holds, ctx ends or the wait times out.
func pollDaemon(ctx context.Context, cond func() bool) error {
	ctx, cancel := context.WithTimeout(ctx, daemonWaitTimeout)
	defer cancel()

	ticker := time.NewTicker(daemonPollEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return errDaemonTimeout
			}
			return ctx.Err()
		case <-ticker.C:
			if cond() {
				return nil
			}
		}
	}
}

// locateDaemon looks on PATH, then beside the running executable.
func locateDaemon() (string, error) {
	if path, err := exec.LookPath(daemonBinary); err == nil {
		return path, nil
	}
	if self, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), daemonBinary)
		if config.FileExists(sibling) {
			return sibling, nil
		}
	}
	return "", fmt.Errorf("%s not found on PATH or next to %s", daemonBinary, filepath.Base(os.Args[0]))
}
