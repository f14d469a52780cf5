package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	names := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		names = append(names, fieldErr.Field)
	}
	return names
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
}

func TestValidate_Percents(t *testing.T) {
	settings := DefaultSettings()
	settings.PausePercents = []int{5, 0, -3}

	names := fieldNames(t, settings.Validate())
	assert.Equal(t, []string{"pause_percents[1]", "pause_percents[2]"}, names)

	settings.PausePercents = nil
	assert.Contains(t, fieldNames(t, settings.Validate()), "pause_percents")
}

func TestValidate_Intervals(t *testing.T) {
	settings := DefaultSettings()
	settings.PollInterval = 2 * time.Second

	assert.Equal(t, []string{"poll_interval"}, fieldNames(t, settings.Validate()))

	settings.TickInterval = 0
	settings.PollInterval = 0
	assert.ElementsMatch(t, []string{"tick_interval", "poll_interval"}, fieldNames(t, settings.Validate()))
}

func TestValidate_Presets(t *testing.T) {
	settings := DefaultSettings()
	settings.PresetsMinutes = []float64{5, -1}
	assert.Equal(t, []string{"presets_minutes[1]"}, fieldNames(t, settings.Validate()))
}

func TestValidate_AlarmSound(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "bell.mp3")
	require.NoError(t, os.WriteFile(existing, []byte("ID3"), 0o644))
	directory := filepath.Join(dir, "sounds.wav")
	require.NoError(t, os.Mkdir(directory, 0o755))

	tests := []struct {
		name  string
		path  string
		valid bool
	}{
		{name: "built-in", path: "", valid: true},
		{name: "existing mp3", path: existing, valid: true},
		{name: "missing file", path: filepath.Join(dir, "missing.ogg"), valid: false},
		{name: "unsupported extension", path: filepath.Join(dir, "bell.flac"), valid: false},
		{name: "directory", path: directory, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			settings.AlarmSound = tt.path

			err := settings.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []string{"alarm_sound"}, fieldNames(t, err))
		})
	}
}

func TestValidate_LanguageAndLoops(t *testing.T) {
	settings := DefaultSettings()
	settings.Language = "fr"
	settings.AlarmLoops = 0

	assert.ElementsMatch(t, []string{"language", "alarm_loops"}, fieldNames(t, settings.Validate()))
}
