package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	GetStateDir() (string, error)
	SpawnDetached(execPath string, args ...string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// GetStateDir returns the directory for logs and other state.
// XDG_STATE_HOME wins on every platform.
func (service *platformService) GetStateDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return stateHome, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get state dir: %w", err)
	}
	return defaultStateDir(homeDir), nil
}

// SpawnDetached starts execPath in a new session with stdio discarded and
// returns without waiting for it.
func (service *platformService) SpawnDetached(execPath string, args ...string) error {
	if execPath == "" {
		return fmt.Errorf("spawn detached: exec path is empty")
	}

	cmd := exec.Command(execPath, args...)
	cmd.Dir = filepath.Dir(execPath)
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn detached: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("spawn detached: release process: %w", err)
	}
	return nil
}
