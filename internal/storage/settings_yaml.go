package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is the settings file inside the application config dir.
const SettingsFileName = "settings.yaml"

type yamlSettings struct {
	PausePercents  []int     `yaml:"pause_percents,omitempty"`
	TickInterval   string    `yaml:"tick_interval,omitempty"`
	PollInterval   string    `yaml:"poll_interval,omitempty"`
	AlarmSound     string    `yaml:"alarm_sound,omitempty"`
	AlarmVolume    float64   `yaml:"alarm_volume"`
	AlarmLoops     int       `yaml:"alarm_loops,omitempty"`
	FlashAlert     *bool     `yaml:"flash_alert,omitempty"`
	PresetsMinutes []float64 `yaml:"presets_minutes,omitempty"`
	Language       string    `yaml:"language,omitempty"`
}

// SettingsPath joins configDir, appName and the settings file name.
func SettingsPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, SettingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	if err := applyYamlSettings(&settings, fileData); err != nil {
		return DefaultSettings(), err
	}
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	flash := settings.FlashAlert
	fileData := yamlSettings{
		PausePercents:  settings.PausePercents,
		TickInterval:   settings.TickInterval.String(),
		PollInterval:   settings.PollInterval.String(),
		AlarmSound:     settings.AlarmSound,
		AlarmVolume:    settings.AlarmVolume,
		AlarmLoops:     settings.AlarmLoops,
		FlashAlert:     &flash,
		PresetsMinutes: settings.PresetsMinutes,
		Language:       settings.Language,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// Absent or zero fields keep their defaults. Values are range-checked by
// Settings.Validate, not here.
func applyYamlSettings(settings *Settings, fileData yamlSettings) error {
	if len(fileData.PausePercents) > 0 {
		settings.PausePercents = fileData.PausePercents
	}
	if fileData.TickInterval != "" {
		interval, err := time.ParseDuration(fileData.TickInterval)
		if err != nil {
			return fmt.Errorf("parse tick_interval: %w", err)
		}
		settings.TickInterval = interval
	}
	if fileData.PollInterval != "" {
		interval, err := time.ParseDuration(fileData.PollInterval)
		if err != nil {
			return fmt.Errorf("parse poll_interval: %w", err)
		}
		settings.PollInterval = interval
	}
	if fileData.AlarmLoops > 0 {
		settings.AlarmLoops = fileData.AlarmLoops
	}
	if fileData.FlashAlert != nil {
		settings.FlashAlert = *fileData.FlashAlert
	}
	if len(fileData.PresetsMinutes) > 0 {
		settings.PresetsMinutes = fileData.PresetsMinutes
	}

	settings.AlarmSound = fileData.AlarmSound
	settings.AlarmVolume = fileData.AlarmVolume
	settings.Language = fileData.Language
	return nil
}
