// Package countdown holds the authoritative timer state and its transitions.
//
// State is not safe for concurrent use. It is owned by a single goroutine
// (see orchestrator) and every transition runs to completion on it.
package countdown

import (
	"errors"
	"math"
)

// ErrInvalidDuration indicates a non-positive countdown length.
var ErrInvalidDuration = errors.New("duration must be positive")

// State is the countdown state machine.
type State struct {
	Original       int64
	Remaining      int64
	Running        bool
	AlarmTriggered bool
}

// Snapshot is the display-facing view of a State.
type Snapshot struct {
	Label   string
	Running bool
}

// New creates a running countdown of originalSeconds.
func New(originalSeconds int64) (*State, error) {
	if originalSeconds <= 0 {
		return nil, ErrInvalidDuration
	}
	return &State{
		Original:  originalSeconds,
		Remaining: originalSeconds,
		Running:   true,
	}, nil
}

// Tick advances the countdown by one second. It reports true exactly once per
// countdown segment: on the tick that brings Remaining to zero or below.
func (state *State) Tick() bool {
	if !state.Running {
		return false
	}
	state.Remaining--
	if state.Remaining <= 0 && !state.AlarmTriggered {
		state.AlarmTriggered = true
		return true
	}
	return false
}

// PauseForPercent restarts the countdown at percent of the original length.
// The result is never below one second, so it cannot expire instantly, and it
// is not capped at the original length.
func (state *State) PauseForPercent(percent int) {
	remaining := int64(math.Round(float64(state.Original) * float64(percent) / 100))
	if remaining < 1 {
		remaining = 1
	}
	state.Remaining = remaining
	state.Running = true
	state.AlarmTriggered = false
}

// ToggleRunning flips the running flag.
func (state *State) ToggleRunning() {
	state.Running = !state.Running
}

// Snapshot returns the current display values.
func (state *State) Snapshot() Snapshot {
	return Snapshot{
		Label:   FormatSeconds(state.Remaining),
		Running: state.Running,
	}
}
