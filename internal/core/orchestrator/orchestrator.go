// Package orchestrator owns the countdown state and coordinates its
// collaborators: display sinks, alarm triggers, the alert window, the tray and
// the GUI event loop.
//
// Every method must be called from the goroutine that owns the state. The
// scheduler guarantees this for Tick and Drain; window buttons run there
// because fyne invokes widget callbacks on its main goroutine. Other
// goroutines communicate only through the action queue.
package orchestrator

import (
	"time"

	"github.com/rs/zerolog"

	"tytimer/internal/core/actions"
	"tytimer/internal/core/countdown"
	"tytimer/internal/core/scheduler"
)

// DisplaySink receives the remaining-time label after every change.
type DisplaySink interface {
	Render(label string, running bool) error
}

// AlarmTrigger produces an alert when the countdown expires.
type AlarmTrigger interface {
	Fire() error
	Silence() error
}

// Window is the pop-up alert surface.
type Window interface {
	Show()
	Hide()
}

// Scheduler registers periodic callbacks on the owning goroutine.
type Scheduler interface {
	SchedulePeriodic(interval time.Duration, callback func()) scheduler.Handle
}

// ActionSource yields queued actions without blocking.
type ActionSource interface {
	TryReceive() (actions.Action, bool)
}

// EventLoop is the GUI loop that quitting terminates.
type EventLoop interface {
	Quit()
}

// Releaser is a resource released on quit.
type Releaser interface {
	Shutdown()
}

// Options contains runtime intervals.
type Options struct {
	TickInterval time.Duration
	PollInterval time.Duration
}

// Dependencies are the collaborators an Orchestrator drives. Window, Tray and
// Loop may be nil.
type Dependencies struct {
	Scheduler Scheduler
	Actions   ActionSource
	Window    Window
	Sinks     []DisplaySink
	Alarms    []AlarmTrigger
	Tray      Releaser
	Loop      EventLoop
	Logger    zerolog.Logger
}

// Orchestrator is the single owner of a countdown.State.
type Orchestrator struct {
	state   *countdown.State
	deps    Dependencies
	options Options
	logger  zerolog.Logger

	started    bool
	quit       bool
	pollHandle scheduler.Handle
	tickHandle scheduler.Handle
}

// New creates an Orchestrator for state.
func New(state *countdown.State, deps Dependencies, options Options) *Orchestrator {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.PollInterval <= 0 {
		options.PollInterval = 100 * time.Millisecond
	}

	return &Orchestrator{
		state:   state,
		deps:    deps,
		options: options,
		logger:  deps.Logger.With().Str("component", "orchestrator").Logger(),
	}
}

// Start registers the action poll and the countdown tick, then publishes the
// initial snapshot.
func (orch *Orchestrator) Start() {
	if orch.started || orch.quit {
		return
	}
	orch.started = true

	orch.pollHandle = orch.deps.Scheduler.SchedulePeriodic(orch.options.PollInterval, orch.Drain)
	orch.tickHandle = orch.deps.Scheduler.SchedulePeriodic(orch.options.TickInterval, orch.Tick)

	orch.logger.Info().
		Int64("original_seconds", orch.state.Original).
		Dur("tick_interval", orch.options.TickInterval).
		Dur("poll_interval", orch.options.PollInterval).
		Msg("countdown started")
	orch.publish()
}

// Tick advances the countdown by one second. On expiry it reveals the alert
// window and fires every alarm trigger.
func (orch *Orchestrator) Tick() {
	if orch.quit {
		return
	}

	if orch.state.Tick() {
		orch.logger.Info().Int64("remaining_seconds", orch.state.Remaining).Msg("countdown expired")
		orch.showWindow()
		for _, alarm := range orch.deps.Alarms {
			if err := alarm.Fire(); err != nil {
				orch.logger.Warn().Err(err).Msg("alarm trigger failed")
			}
		}
	}
	orch.publish()
}

// Drain processes every queued action in FIFO order. A Quit action ends the
// cycle; actions queued after it are left unprocessed.
func (orch *Orchestrator) Drain() {
	for !orch.quit {
		action, ok := orch.deps.Actions.TryReceive()
		if !ok {
			return
		}
		orch.apply(action)
	}
}

func (orch *Orchestrator) apply(action actions.Action) {
	orch.logger.Debug().Stringer("action", action).Msg("applying action")

	switch action {
	case actions.ToggleRunning:
		orch.state.ToggleRunning()
	case actions.ShowAlarm:
		orch.showWindow()
	case actions.Quit:
		orch.Quit()
		return
	default:
		orch.logger.Warn().Int("action", int(action)).Msg("ignoring unknown action")
		return
	}
	orch.publish()
}

// PauseForPercent restarts the countdown at percent of its original length,
// silences any ringing alarm and hides the alert window.
func (orch *Orchestrator) PauseForPercent(percent int) {
	if orch.quit {
		return
	}

	orch.state.PauseForPercent(percent)
	orch.logger.Info().
		Int("percent", percent).
		Int64("remaining_seconds", orch.state.Remaining).
		Msg("countdown restarted")

	orch.HideWindow()
	orch.silence()
	orch.publish()
}

// HideWindow hides the alert window without touching the countdown.
func (orch *Orchestrator) HideWindow() {
	if orch.deps.Window != nil {
		orch.deps.Window.Hide()
	}
}

// Quit stops the countdown and releases every resource. Later calls are no-ops.
func (orch *Orchestrator) Quit() {
	if orch.quit {
		return
	}
	orch.quit = true
	orch.logger.Info().Msg("quitting")

	if orch.pollHandle != nil {
		orch.pollHandle.Cancel()
	}
	if orch.tickHandle != nil {
		orch.tickHandle.Cancel()
	}
	orch.silence()
	if orch.deps.Tray != nil {
		orch.deps.Tray.Shutdown()
	}
	if orch.deps.Loop != nil {
		orch.deps.Loop.Quit()
	}
}

// Quitting reports whether Quit has run.
func (orch *Orchestrator) Quitting() bool {
	return orch.quit
}

// State returns a copy of the current countdown state.
func (orch *Orchestrator) State() countdown.State {
	return *orch.state
}

func (orch *Orchestrator) showWindow() {
	if orch.deps.Window != nil {
		orch.deps.Window.Show()
	}
}

func (orch *Orchestrator) silence() {
	for _, alarm := range orch.deps.Alarms {
		if err := alarm.Silence(); err != nil {
			orch.logger.Warn().Err(err).Msg("alarm silence failed")
		}
	}
}

func (orch *Orchestrator) publish() {
	snapshot := orch.state.Snapshot()
	for _, sink := range orch.deps.Sinks {
		if err := sink.Render(snapshot.Label, snapshot.Running); err != nil {
			orch.logger.Warn().Err(err).Str("label", snapshot.Label).Msg("display sink render failed")
		}
	}
}
