package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"
)

// SupportedSoundExtensions lists the alarm file formats the audio player decodes.
var SupportedSoundExtensions = []string{".ogg", ".mp3", ".wav"}

var supportedLanguages = []string{"en", "uk", "de"}

// Validate checks value ranges and file references.
func (settings Settings) Validate() error {
	return criterio.ValidateStruct(
		settings.validatePercents(),
		settings.validateIntervals(),
		settings.validatePresets(),
		criterio.Run("alarm_sound", settings.AlarmSound, soundFileExists),
		criterio.Run("alarm_loops", settings.AlarmLoops, isPositive),
		criterio.Run("language", settings.Language, isSupportedLanguage),
	)
}

func (settings Settings) validatePercents() error {
	if len(settings.PausePercents) == 0 {
		return criterio.NewFieldErrors("pause_percents", fmt.Errorf("at least one percent is required"))
	}

	var errs criterio.FieldErrorsBuilder
	for i, percent := range settings.PausePercents {
		if percent <= 0 {
			errs = errs.Append(fmt.Sprintf("pause_percents[%d]", i), fmt.Errorf("must be positive, got %d", percent))
		}
	}
	return errs.ToError()
}

func (settings Settings) validateIntervals() error {
	var errs criterio.FieldErrorsBuilder
	if settings.TickInterval <= 0 {
		errs = errs.Append("tick_interval", fmt.Errorf("must be positive, got %s", settings.TickInterval))
	}
	if settings.PollInterval <= 0 {
		errs = errs.Append("poll_interval", fmt.Errorf("must be positive, got %s", settings.PollInterval))
	} else if settings.PollInterval >= settings.TickInterval {
		errs = errs.Append("poll_interval", fmt.Errorf("must be shorter than tick_interval (%s)", settings.TickInterval))
	}
	return errs.ToError()
}

func (settings Settings) validatePresets() error {
	var errs criterio.FieldErrorsBuilder
	for i, minutes := range settings.PresetsMinutes {
		if minutes <= 0 {
			errs = errs.Append(fmt.Sprintf("presets_minutes[%d]", i), fmt.Errorf("must be positive, got %v", minutes))
		}
	}
	return errs.ToError()
}

func soundFileExists(path string) error {
	if path == "" {
		return nil // built-in tone
	}

	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, candidate := range SupportedSoundExtensions {
		if ext == candidate {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported format %q, want one of %s", ext, strings.Join(SupportedSoundExtensions, ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

func isPositive(value int) error {
	if value <= 0 {
		return fmt.Errorf("must be positive, got %d", value)
	}
	return nil
}

func isSupportedLanguage(lang string) error {
	if lang == "" {
		return nil // system locale
	}
	for _, candidate := range supportedLanguages {
		if lang == candidate {
			return nil
		}
	}
	return fmt.Errorf("unsupported language %q, want one of %s", lang, strings.Join(supportedLanguages, ", "))
}
