package config

import (
	"errors"
	"os"
	"syscall"

	"github.com/automat-io/automat/internal/models"
)

// LoadDaemonInfo reads daemon.yaml. A missing file yields (nil, nil).
func LoadDaemonInfo() (*models.DaemonInfo, error) {
	path, err := GlobalDaemonFile()
	if err != nil {
		return nil, err
	}
	info := new(models.DaemonInfo)
	if err := LoadYAML(path, info); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return info, nil
}

// SaveDaemonInfo records where automatd is listening.
func SaveDaemonInfo(info *models.DaemonInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveDaemonInfo deletes daemon.yaml if present.
func RemoveDaemonInfo() error {
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	return RemoveFile(path)
}

// IsDaemonRunning reports whether daemon.yaml names a live process. The
// recorded info is returned either way; a stale file is cleaned up.
func IsDaemonRunning() (bool, *models.DaemonInfo, error) {
	info, err := LoadDaemonInfo()
	if err != nil || info == nil {
		return false, nil, err
	}
	if pidAlive(info.PID) {
		return true, info, nil
	}
	_ = RemoveDaemonInfo()
	return false, info, nil
}

// pidAlive probes pid with signal 0.
func pidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
