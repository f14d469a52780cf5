package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tytimer/internal/storage"
)

func TestConfigValidate_MissingFileUsesDefaults(t *testing.T) {
	h := newHarness(t)

	err := h.run("config", "validate")
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "does not exist, using defaults")
	assert.Contains(t, h.out.String(), "Settings are valid")
}

func TestConfigValidate_ReportsFieldErrors(t *testing.T) {
	h := newHarness(t)
	content := "pause_percents: [5, 0]\npresets_minutes: [-1]\n"
	require.NoError(t, os.WriteFile(h.configPath(), []byte(content), 0o644))

	err := h.run("config", "validate")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))

	output := h.out.String()
	assert.Contains(t, output, "pause_percents[1]")
	assert.Contains(t, output, "presets_minutes[0]")
	assert.Contains(t, output, "2 error(s) found")
}

func TestConfigValidate_ParseError(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.configPath(), []byte("poll_interval: often\n"), 0o644))

	err := h.run("config", "validate")
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, h.out.String(), "poll_interval")
}

func TestConfigInit(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("config", "init"))
	loaded, err := storage.LoadSettings(h.configPath())
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultSettings(), loaded)

	err = h.run("config", "init")
	assert.Equal(t, 1, ExitCode(err), "existing file is kept without --force")

	require.NoError(t, h.run("config", "init", "--force"))
}
