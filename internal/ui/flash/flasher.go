// Package flash blinks the alert window while the alarm rings.
package flash

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Config contains flash timing values.
type Config struct {
	Interval time.Duration
	// Duration bounds a flash sequence. Zero flashes until silenced.
	Duration time.Duration
}

// DefaultConfig returns the timing used by the alert window.
func DefaultConfig() Config {
	return Config{
		Interval: 500 * time.Millisecond,
		Duration: 30 * time.Second,
	}
}

// Flasher toggles a highlight on and off. It implements orchestrator.AlarmTrigger.
//
// Highlight changes from the flashing goroutine go through dispatch (fyne.Do
// in the application). Each one is tagged with the sequence that produced it
// and dropped if a newer Fire or Silence has happened since.
type Flasher struct {
	mu           sync.Mutex
	highlightMu  sync.Mutex
	clock        clock.Clock
	config       Config
	dispatch     func(func())
	setHighlight func(on bool)
	cancel       context.CancelFunc
	sequence     atomic.Uint64
}

// New creates a Flasher. A nil clock uses the wall clock; a nil dispatch calls
// setHighlight directly.
func New(clk clock.Clock, config Config, dispatch func(func()), setHighlight func(on bool)) *Flasher {
	if clk == nil {
		clk = clock.New()
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	return &Flasher{
		clock:        clk,
		config:       config,
		dispatch:     dispatch,
		setHighlight: setHighlight,
	}
}

// Fire starts a new flash sequence, replacing any running one.
func (flasher *Flasher) Fire() error {
	sequence := flasher.sequence.Add(1)
	flasher.start(func(ctx context.Context) {
		flasher.run(ctx, sequence)
	})
	return nil
}

// Silence stops flashing and clears the highlight. It must be called from the
// goroutine that owns the highlighted widget.
func (flasher *Flasher) Silence() error {
	flasher.Stop()

	flasher.highlightMu.Lock()
	defer flasher.highlightMu.Unlock()
	flasher.sequence.Add(1)
	flasher.setHighlight(false)
	return nil
}

// Stop terminates any active flash sequence without touching the highlight.
func (flasher *Flasher) Stop() {
	flasher.mu.Lock()
	defer flasher.mu.Unlock()
	if flasher.cancel != nil {
		flasher.cancel()
		flasher.cancel = nil
	}
}

func (flasher *Flasher) start(run func(context.Context)) {
	flasher.mu.Lock()
	if flasher.cancel != nil {
		flasher.cancel()
	}
	runCtx, cancel := context.WithCancel(context.Background())
	flasher.cancel = cancel
	flasher.mu.Unlock()

	go run(runCtx)
}

func (flasher *Flasher) run(ctx context.Context, sequence uint64) {
	var deadline time.Time
	if flasher.config.Duration > 0 {
		deadline = flasher.clock.Now().Add(flasher.config.Duration)
	}

	on := true
	for {
		flasher.apply(sequence, on)
		if !sleepWithContext(ctx, flasher.clock, flasher.config.Interval) {
			return
		}
		on = !on
		if !deadline.IsZero() && !flasher.clock.Now().Before(deadline) {
			flasher.apply(sequence, false)
			return
		}
	}
}

func (flasher *Flasher) apply(sequence uint64, on bool) {
	flasher.dispatch(func() {
		flasher.highlightMu.Lock()
		defer flasher.highlightMu.Unlock()
		if flasher.sequence.Load() != sequence {
			return
		}
		flasher.setHighlight(on)
	})
}

func sleepWithContext(ctx context.Context, clk clock.Clock, duration time.Duration) bool {
	timer := clk.Timer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
