// Package audio plays the alarm sound.
package audio

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/rs/zerolog"

	"tytimer/internal/core/model"
)

var (
	// ErrUnavailable indicates there is no audio output to play on.
	ErrUnavailable = errors.New("audio output unavailable")
	// ErrUnsupportedFormat indicates an alarm file the decoders do not handle.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Output is a mixer that streams are played on.
type Output interface {
	Play(streamers ...beep.Streamer)
	Clear()
}

// Player rings the alarm. It implements orchestrator.AlarmTrigger.
type Player struct {
	mu      sync.Mutex
	output  Output
	alarm   *beep.Buffer
	loops   int
	volume  float64
	logger  zerolog.Logger
	ringing atomic.Bool
}

// NewPlayer creates a Player. A nil output makes Fire report ErrUnavailable.
func NewPlayer(output Output, alarm *beep.Buffer, config model.AlarmConfig, logger zerolog.Logger) *Player {
	loops := config.Loops
	if loops <= 0 {
		loops = 1
	}
	return &Player{
		output: output,
		alarm:  alarm,
		loops:  loops,
		volume: config.Volume,
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// Fire stops whatever is playing and starts the alarm.
func (player *Player) Fire() error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if player.output == nil || player.alarm == nil {
		return ErrUnavailable
	}

	player.output.Clear()
	player.ringing.Store(true)
	looped := beep.Loop(player.loops, player.alarm.Streamer(0, player.alarm.Len()))
	player.output.Play(&effects.Volume{
		Streamer: beep.Seq(looped, beep.Callback(player.finished)),
		Base:     2,
		Volume:   player.volume,
	})

	player.logger.Debug().Int("loops", player.loops).Float64("volume", player.volume).Msg("alarm playing")
	return nil
}

// Silence stops the alarm. It is a no-op when nothing is playing.
func (player *Player) Silence() error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if player.output == nil || !player.ringing.Load() {
		return nil
	}
	player.output.Clear()
	player.ringing.Store(false)
	player.logger.Debug().Msg("alarm silenced")
	return nil
}

// Ringing reports whether the alarm is still playing.
func (player *Player) Ringing() bool {
	return player.ringing.Load()
}

// finished runs on the mixer goroutine after the last loop. It must not take
// player.mu: Fire holds it while waiting for the mixer lock.
func (player *Player) finished() {
	player.ringing.Store(false)
}
