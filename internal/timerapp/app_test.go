package timerapp

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tytimer/internal/core/actions"
	"tytimer/internal/core/countdown"
	"tytimer/internal/core/model"
	"tytimer/internal/core/orchestrator"
	"tytimer/internal/storage"
)

type countingAlarm struct {
	fired    int
	silenced int
	closed   bool
}

func (alarm *countingAlarm) Fire() error {
	alarm.fired++
	return nil
}

func (alarm *countingAlarm) Silence() error {
	alarm.silenced++
	return nil
}

func newTestRunner(alarm *countingAlarm) *Runner {
	return &Runner{
		logger: zerolog.Nop(),
		clock:  clock.NewMock(),
		openAudio: func(model.AlarmConfig, zerolog.Logger) (orchestrator.AlarmTrigger, func()) {
			return alarm, func() { alarm.closed = true }
		},
	}
}

func quietSettings() storage.Settings {
	settings := storage.DefaultSettings()
	settings.FlashAlert = false
	return settings
}

func TestBuild_ExpiryShowsAlertAndRings(t *testing.T) {
	alarm := &countingAlarm{}
	runner := newTestRunner(alarm)

	sess, err := runner.build(test.NewTempApp(t), 2, quietSettings())
	require.NoError(t, err)
	defer sess.close()

	assert.False(t, sess.alert.Visible())

	sess.orch.Tick()
	sess.orch.Tick()
	assert.True(t, sess.alert.Visible())
	assert.Equal(t, 1, alarm.fired)

	sess.orch.Tick()
	assert.Equal(t, 1, alarm.fired, "alarm rings once per countdown")

	sess.orch.PauseForPercent(50)
	assert.False(t, sess.alert.Visible())
	assert.Equal(t, 1, alarm.silenced)
	assert.Equal(t, int64(1), sess.orch.State().Remaining)
}

func TestBuild_QueuedQuitReleasesResources(t *testing.T) {
	alarm := &countingAlarm{}
	runner := newTestRunner(alarm)

	sess, err := runner.build(test.NewTempApp(t), 60, quietSettings())
	require.NoError(t, err)

	require.NoError(t, sess.queue.Send(actions.ShowAlarm))
	require.NoError(t, sess.queue.Send(actions.Quit))
	sess.orch.Drain()

	assert.True(t, sess.orch.Quitting())
	assert.True(t, sess.loop.stopped.Load())
	assert.Equal(t, 1, alarm.silenced)

	sess.close()
	assert.True(t, alarm.closed)
	assert.ErrorIs(t, sess.queue.Send(actions.ToggleRunning), actions.ErrClosed)
}

type countingTray struct {
	shutdowns int
}

func (tray *countingTray) Shutdown() { tray.shutdowns++ }

func TestTrayReleaser_SkipsAfterLoopStopped(t *testing.T) {
	fake := &countingTray{}
	loop := &eventLoop{app: test.NewTempApp(t)}
	releaser := trayReleaser{tray: fake, loop: loop}

	releaser.Shutdown()
	assert.Equal(t, 1, fake.shutdowns)

	loop.stopped.Store(true)
	releaser.Shutdown()
	assert.Equal(t, 1, fake.shutdowns, "driver already gone")
}

func TestBuild_QuitAfterLoopEndedSilencesAlarms(t *testing.T) {
	alarm := &countingAlarm{}
	runner := newTestRunner(alarm)

	sess, err := runner.build(test.NewTempApp(t), 60, quietSettings())
	require.NoError(t, err)
	defer sess.close()

	sess.loop.stopped.Store(true)
	assert.NotPanics(t, sess.orch.Quit)
	assert.True(t, sess.orch.Quitting())
	assert.Equal(t, 1, alarm.silenced)
}

func TestBuild_WithoutAudioDevice(t *testing.T) {
	runner := newTestRunner(&countingAlarm{})
	runner.openAudio = func(model.AlarmConfig, zerolog.Logger) (orchestrator.AlarmTrigger, func()) {
		return nil, nil
	}

	sess, err := runner.build(test.NewTempApp(t), 1, storage.DefaultSettings())
	require.NoError(t, err)
	defer sess.close()

	assert.NotPanics(t, func() {
		sess.orch.Tick()
		sess.orch.PauseForPercent(10)
	})
	assert.True(t, sess.orch.State().Running)
}

func TestBuild_RejectsInvalidDuration(t *testing.T) {
	runner := newTestRunner(&countingAlarm{})

	_, err := runner.build(test.NewTempApp(t), 0, quietSettings())
	assert.ErrorIs(t, err, countdown.ErrInvalidDuration)
}

func TestForwardSignals_ContextCancelQueuesQuit(t *testing.T) {
	runner := newTestRunner(&countingAlarm{})
	queue := actions.NewQueue()

	ctx, cancel := context.WithCancel(context.Background())
	stop := runner.forwardSignals(ctx, queue)
	defer stop()

	cancel()
	require.Eventually(t, func() bool { return queue.Len() == 1 }, time.Second, time.Millisecond)

	action, ok := queue.TryReceive()
	require.True(t, ok)
	assert.Equal(t, actions.Quit, action)
}

func TestForwardSignals_StopSendsNothing(t *testing.T) {
	runner := newTestRunner(&countingAlarm{})
	queue := actions.NewQueue()

	stop := runner.forwardSignals(context.Background(), queue)
	stop()

	assert.Never(t, func() bool { return queue.Len() > 0 }, 20*time.Millisecond, time.Millisecond)
}
