package storage

import (
	"time"

	"tytimer/internal/core/model"
)

// Settings defines user preferences read from the settings file.
type Settings struct {
	PausePercents  []int
	TickInterval   time.Duration
	PollInterval   time.Duration
	AlarmSound     string
	AlarmVolume    float64
	AlarmLoops     int
	FlashAlert     bool
	PresetsMinutes []float64
	Language       string
}

// DefaultSettings returns default settings for tytimer.
func DefaultSettings() Settings {
	return Settings{
		PausePercents:  []int{1, 5, 10},
		TickInterval:   time.Second,
		PollInterval:   100 * time.Millisecond,
		AlarmVolume:    0,
		AlarmLoops:     3,
		FlashAlert:     true,
		PresetsMinutes: []float64{5, 10, 25, 50},
	}
}

// TimerConfig converts settings to model.TimerConfig.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		TickInterval:  settings.TickInterval,
		PollInterval:  settings.PollInterval,
		PausePercents: append([]int(nil), settings.PausePercents...),
	}
}

// AlarmConfig converts settings to model.AlarmConfig.
func (settings Settings) AlarmConfig() model.AlarmConfig {
	return model.AlarmConfig{
		SoundPath: settings.AlarmSound,
		Volume:    settings.AlarmVolume,
		Loops:     settings.AlarmLoops,
		Flash:     settings.FlashAlert,
	}
}
