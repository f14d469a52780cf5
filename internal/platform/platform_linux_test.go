//go:build linux

package platform

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GetConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := NewService().GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestService_GetStateDir(t *testing.T) {
	t.Run("xdg state home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_STATE_HOME", dir)

		got, err := NewService().GetStateDir()
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_STATE_HOME", "")
		t.Setenv("HOME", home)

		got, err := NewService().GetStateDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "state"), got)
	})
}

func TestService_SpawnDetached(t *testing.T) {
	service := NewService()

	t.Run("empty path", func(t *testing.T) {
		assert.Error(t, service.SpawnDetached(""))
	})

	t.Run("missing executable", func(t *testing.T) {
		err := service.SpawnDetached(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("starts process", func(t *testing.T) {
		truePath, err := exec.LookPath("true")
		if err != nil {
			t.Skip("true not available")
		}
		assert.NoError(t, service.SpawnDetached(truePath, "--no-daemon", "5"))
	})
}
