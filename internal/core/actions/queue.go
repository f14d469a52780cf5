// Package actions carries user intents from foreign goroutines (tray menu,
// signal watcher) to the goroutine that owns the countdown state.
package actions

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Send after the queue has been closed.
var ErrClosed = errors.New("action queue closed")

// Action is a request to change or reveal the timer.
type Action int

const (
	ToggleRunning Action = iota + 1
	ShowAlarm
	Quit
)

func (action Action) String() string {
	switch action {
	case ToggleRunning:
		return "toggle_running"
	case ShowAlarm:
		return "show_alarm"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Queue is an unbounded FIFO with many producers and a single consumer.
// Send never blocks and never drops.
type Queue struct {
	mu     sync.Mutex
	items  []Action
	closed bool
}

func NewQueue() *Queue {
	return &Queue{}
}

// Send appends action to the queue.
func (queue *Queue) Send(action Action) error {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	if queue.closed {
		return ErrClosed
	}
	queue.items = append(queue.items, action)
	return nil
}

// TryReceive pops the oldest action without blocking. Actions sent before
// Close remain receivable.
func (queue *Queue) TryReceive() (Action, bool) {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	if len(queue.items) == 0 {
		return 0, false
	}
	action := queue.items[0]
	queue.items[0] = 0
	queue.items = queue.items[1:]
	if len(queue.items) == 0 {
		queue.items = nil
	}
	return action, true
}

// Len reports the number of pending actions.
func (queue *Queue) Len() int {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return len(queue.items)
}

// Close stops accepting new actions. It is safe to call more than once.
func (queue *Queue) Close() {
	queue.mu.Lock()
	queue.closed = true
	queue.mu.Unlock()
}
