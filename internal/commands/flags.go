package commands

import (
	"os"
	"path/filepath"

	"tytimer/internal/platform"
	"tytimer/internal/storage"
)

const appName = "tytimer"

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	NoDaemon   bool

	// Settings is loaded by the root action before any GUI starts
	Settings storage.Settings
}

// DefaultConfigPath returns the default settings file path.
// On Linux: $XDG_CONFIG_HOME/tytimer/settings.yaml (defaults to ~/.config/tytimer/settings.yaml)
// On macOS: ~/Library/Application Support/tytimer/settings.yaml
func DefaultConfigPath() string {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		configDir = "."
	}
	return storage.SettingsPath(configDir, appName)
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/tytimer/tytimer.log
// On Linux: $XDG_STATE_HOME/tytimer/tytimer.log (defaults to ~/.local/state/tytimer/tytimer.log)
func DefaultLogFile() string {
	stateDir, err := platform.NewService().GetStateDir()
	if err != nil {
		stateDir = os.TempDir()
	}
	return filepath.Join(stateDir, appName, appName+".log")
}
