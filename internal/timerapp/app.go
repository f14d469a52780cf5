// Package timerapp assembles the fyne application around the orchestrator:
// alert window, tray icon, alarm sound, window flashing, scheduler and signal
// handling.
package timerapp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/benbjohnson/clock"
	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tytimer/internal/audio"
	"tytimer/internal/core/actions"
	"tytimer/internal/core/countdown"
	"tytimer/internal/core/model"
	"tytimer/internal/core/orchestrator"
	"tytimer/internal/core/scheduler"
	"tytimer/internal/storage"
	"tytimer/internal/ui/alertwindow"
	"tytimer/internal/ui/flash"
	"tytimer/internal/ui/setter"
	"tytimer/internal/ui/tray"
	"tytimer/resources"
)

// AppID identifies tytimer to fyne (preferences, notifications).
const AppID = "com.tytimer.app"

type trayService interface {
	orchestrator.DisplaySink
	orchestrator.Releaser
}

// Runner runs the timer and setter GUIs.
type Runner struct {
	logger    zerolog.Logger
	clock     clock.Clock
	newApp    func() fyne.App
	openAudio func(config model.AlarmConfig, logger zerolog.Logger) (orchestrator.AlarmTrigger, func())
}

// New creates a Runner. It logs through the global zerolog logger, which the
// CLI replaces before any GUI starts.
func New() *Runner {
	return &Runner{
		clock:     clock.New(),
		newApp:    func() fyne.App { return app.NewWithID(AppID) },
		openAudio: openAlarmPlayer,
	}
}

// session is one fully wired countdown.
type session struct {
	queue   *actions.Queue
	orch    *orchestrator.Orchestrator
	alert   *alertwindow.Window
	tray    trayService
	loop    *eventLoop
	closers []func()
}

// eventLoop quits the fyne app once, and never after Run has returned.
type eventLoop struct {
	app     fyne.App
	stopped atomic.Bool
}

func (loop *eventLoop) Quit() {
	if loop.stopped.CompareAndSwap(false, true) {
		loop.app.Quit()
	}
}

// trayReleaser shuts the tray down only while the fyne driver still runs.
type trayReleaser struct {
	tray orchestrator.Releaser
	loop *eventLoop
}

func (releaser trayReleaser) Shutdown() {
	if releaser.loop.stopped.Load() {
		return
	}
	releaser.tray.Shutdown()
}

// RunTimer counts down seconds and blocks until the user quits, a signal
// arrives or ctx is cancelled.
func (runner *Runner) RunTimer(ctx context.Context, seconds int64, settings storage.Settings) error {
	runner.logger = log.With().Str("component", "timerapp").Logger()
	fyneApp := runner.newApp()
	sess, err := runner.build(fyneApp, seconds, settings)
	if err != nil {
		return err
	}
	defer sess.close()

	stopSignals := runner.forwardSignals(ctx, sess.queue)
	defer stopSignals()

	fyneApp.Lifecycle().SetOnStarted(sess.orch.Start)
	fyneApp.Run()

	// The loop may end without a Quit action (for example when the driver
	// shuts down). Release what the orchestrator owns; the tray went down
	// with the driver.
	sess.loop.stopped.Store(true)
	sess.orch.Quit()
	runner.logger.Info().Int64("remaining_seconds", sess.orch.State().Remaining).Msg("timer exited")
	return nil
}

// RunSetter shows the duration prompt. start is called with the chosen
// minutes; on success the prompt closes and the app exits.
func (runner *Runner) RunSetter(ctx context.Context, settings storage.Settings, start func(minutes float64) error) error {
	runner.logger = log.With().Str("component", "setter").Logger()
	fyneApp := runner.newApp()
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))
	loop := &eventLoop{app: fyneApp}

	prompt := setter.New(fyneApp, settings.PresetsMinutes, func(minutes float64) error {
		if err := start(minutes); err != nil {
			return fmt.Errorf("start timer: %w", err)
		}
		loop.Quit()
		return nil
	})
	prompt.SetOnClosed(loop.Quit)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(loop.Quit)
		case <-done:
		}
	}()

	prompt.Show()
	fyneApp.Run()
	loop.stopped.Store(true)
	runner.logger.Debug().Msg("setter closed")
	return nil
}

func (runner *Runner) build(fyneApp fyne.App, seconds int64, settings storage.Settings) (*session, error) {
	state, err := countdown.New(seconds)
	if err != nil {
		return nil, fmt.Errorf("create countdown: %w", err)
	}

	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))
	sess := &session{
		queue: actions.NewQueue(),
		loop:  &eventLoop{app: fyneApp},
	}
	sess.closers = append(sess.closers, sess.queue.Close)

	timerConfig := settings.TimerConfig()
	alarmConfig := settings.AlarmConfig()

	// Window callbacks run on the fyne main goroutine, which owns the state.
	sess.alert = alertwindow.New(fyneApp, alertwindow.Config{
		OriginalSeconds: seconds,
		PausePercents:   timerConfig.PausePercents,
	}, alertwindow.Callbacks{
		OnStop:  func() { sess.orch.Quit() },
		OnPause: func(percent int) { sess.orch.PauseForPercent(percent) },
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		manager := tray.New(desktopApp, sess.queue, tray.Icons{
			Running: resources.MustIcon(resources.RunningIcon),
			Paused:  resources.MustIcon(resources.PausedIcon),
		}, runner.logger)
		manager.ShowOnClick(sess.alert.Native())
		sess.tray = manager
	} else {
		runner.logger.Warn().Msg("system tray unsupported on this platform, continuing without it")
		sess.tray = tray.Noop{}
	}

	var alarms []orchestrator.AlarmTrigger
	if player, closePlayer := runner.openAudio(alarmConfig, runner.logger); player != nil {
		alarms = append(alarms, player)
		sess.closers = append(sess.closers, closePlayer)
	}
	if alarmConfig.Flash {
		flasher := flash.New(runner.clock, flash.DefaultConfig(), fyne.Do, sess.alert.SetHighlight)
		alarms = append(alarms, flasher)
		sess.closers = append(sess.closers, flasher.Stop)
	}

	sess.orch = orchestrator.New(state, orchestrator.Dependencies{
		Scheduler: scheduler.New(runner.clock, fyne.DoAndWait),
		Actions:   sess.queue,
		Window:    sess.alert,
		Sinks:     []orchestrator.DisplaySink{sess.alert, sess.tray},
		Alarms:    alarms,
		Tray:      trayReleaser{tray: sess.tray, loop: sess.loop},
		Loop:      sess.loop,
		Logger:    runner.logger,
	}, orchestrator.Options{
		TickInterval: timerConfig.TickInterval,
		PollInterval: timerConfig.PollInterval,
	})

	return sess, nil
}

// forwardSignals turns SIGINT, SIGTERM and SIGHUP (or ctx cancellation) into a
// Quit action. The returned func stops listening.
func (runner *Runner) forwardSignals(ctx context.Context, queue *actions.Queue) func() {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			select {
			case <-done:
				return
			default:
			}
			runner.logger.Info().Msg("quit requested by signal")
			if err := queue.Send(actions.Quit); err != nil && !errors.Is(err, actions.ErrClosed) {
				runner.logger.Warn().Err(err).Msg("failed to enqueue quit")
			}
		case <-done:
		}
	}()

	return func() {
		close(done)
		stop()
	}
}

func (sess *session) close() {
	for i := len(sess.closers) - 1; i >= 0; i-- {
		sess.closers[i]()
	}
}

// openAlarmPlayer opens the audio device and loads the alarm sound. Without an
// audio device the alarm stays silent and only the window alerts.
func openAlarmPlayer(config model.AlarmConfig, logger zerolog.Logger) (orchestrator.AlarmTrigger, func()) {
	output, err := audio.OpenSpeaker(audio.SampleRate)
	if err != nil {
		logger.Warn().Err(err).Msg("alarm sound disabled")
		return nil, nil
	}

	closer := func() {}
	if closable, ok := output.(interface{ Close() }); ok {
		closer = closable.Close
	}

	sound, err := loadAlarmSound(config.SoundPath, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("alarm sound disabled")
		closer()
		return nil, nil
	}

	return audio.NewPlayer(output, sound, config, logger), closer
}

func loadAlarmSound(path string, logger zerolog.Logger) (*beep.Buffer, error) {
	if path != "" {
		sound, err := audio.LoadFile(path, audio.SampleRate)
		if err == nil {
			return sound, nil
		}
		logger.Warn().Err(err).Str("path", path).Msg("falling back to the built-in alarm")
	}
	return audio.BuiltinAlarm(audio.SampleRate)
}
