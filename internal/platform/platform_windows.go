//go:build windows

package platform

import "path/filepath"

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func defaultStateDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Local")
}
