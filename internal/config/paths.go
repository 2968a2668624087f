// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global AutoMat directory.
	GlobalDirName = ".automat"

	// LogsDirName is the name of the run logs directory.
	LogsDirName = "logs"

	// HomeEnv overrides the global directory location.
	HomeEnv = "AUTOMAT_HOME"
)

// File names
const (
	DaemonFileName   = "daemon.yaml"
	SettingsFileName = "settings.yaml"
	ConfigFileName   = "config.yaml"
	CatalogFileName  = "apps.yaml"
	EnvFileName      = ".env"
	TUILogFileName   = "automat.log"
)

// GlobalDir returns the path to the global AutoMat directory (~/.automat/).
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

func globalFile(name string) (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// GlobalDaemonFile returns the path to the daemon.yaml file.
func GlobalDaemonFile() (string, error) {
	return globalFile(DaemonFileName)
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	return globalFile(SettingsFileName)
}

// GlobalConfigFile returns the path to the tenant config.yaml file.
func GlobalConfigFile() (string, error) {
	return globalFile(ConfigFileName)
}

// GlobalCatalogFile returns the path to the apps.yaml file.
func GlobalCatalogFile() (string, error) {
	return globalFile(CatalogFileName)
}

// GlobalEnvFile returns the path to the optional .env file.
func GlobalEnvFile() (string, error) {
	return globalFile(EnvFileName)
}

// GlobalLogsDir returns the path to the logs directory.
func GlobalLogsDir() (string, error) {
	return globalFile(LogsDirName)
}

// EnsureGlobalDir creates the global AutoMat directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// EnsureGlobalLogsDir creates the global logs directory if it doesn't exist.
func EnsureGlobalLogsDir() error {
	dir, err := GlobalLogsDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
