//go:build linux

package platform

import "path/filepath"

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func defaultStateDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "state")
}
