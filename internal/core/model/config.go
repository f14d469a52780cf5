package model

import "time"

// TimerConfig contains runtime settings for the countdown orchestrator and
// the alert window.
type TimerConfig struct {
	TickInterval  time.Duration
	PollInterval  time.Duration
	PausePercents []int
}

// AlarmConfig defines how expiry is announced.
type AlarmConfig struct {
	// SoundPath is an .ogg, .mp3 or .wav file. Empty selects the built-in tone.
	SoundPath string
	// Volume is a base-2 exponent: 0 is unchanged, -1 is half, 1 is double.
	Volume float64
	Loops  int
	Flash  bool
}
