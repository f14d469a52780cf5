// Package scheduler runs periodic callbacks on a single owning goroutine.
//
// Each periodic task waits on its own ticker, but the callback itself is
// handed to a Dispatch function (fyne.DoAndWait in the application) so that
// all callbacks execute on the GUI main goroutine, one at a time. Because the
// ticker goroutine waits for the callback to finish, a slow callback delays
// the next tick instead of letting invocations pile up.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Dispatch runs fn on the owning goroutine and returns once it has completed.
type Dispatch func(fn func())

// Handle cancels a periodic task.
type Handle interface {
	Cancel()
}

// Scheduler creates periodic tasks driven by a clock.
type Scheduler struct {
	clock    clock.Clock
	dispatch Dispatch
}

// New creates a Scheduler. A nil clock uses the wall clock; a nil dispatch
// runs callbacks directly on the ticker goroutine.
func New(clk clock.Clock, dispatch Dispatch) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Scheduler{clock: clk, dispatch: dispatch}
}

// SchedulePeriodic invokes callback every interval until the returned handle is
// cancelled. A non-positive interval is treated as one second.
func (scheduler *Scheduler) SchedulePeriodic(interval time.Duration, callback func()) Handle {
	if interval <= 0 {
		interval = time.Second
	}

	task := &periodicTask{
		callback: callback,
		stopCh:   make(chan struct{}),
	}
	// The ticker is created before the goroutine starts so no tick between
	// scheduling and the first receive is lost.
	ticker := scheduler.clock.Ticker(interval)
	go scheduler.run(task, ticker)
	return task
}

func (scheduler *Scheduler) run(task *periodicTask, ticker *clock.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-task.stopCh:
			return
		case <-ticker.C:
			if task.cancelled.Load() {
				return
			}
			scheduler.dispatch(task.invoke)
		}
	}
}

type periodicTask struct {
	callback  func()
	cancelled atomic.Bool
	stopOnce  sync.Once
	stopCh    chan struct{}
}

// Cancel stops future invocations. It never blocks, so it may be called from
// inside the task's own callback. A dispatched invocation that has not started
// yet is skipped.
func (task *periodicTask) Cancel() {
	task.cancelled.Store(true)
	task.stopOnce.Do(func() {
		close(task.stopCh)
	})
}

func (task *periodicTask) invoke() {
	if task.cancelled.Load() {
		return
	}
	task.callback()
}
