package tray

import (
	"errors"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"

	"tytimer/internal/core/actions"
	"tytimer/internal/i18n"
)

// ErrTrayStopped is returned by Render after Shutdown.
var ErrTrayStopped = errors.New("tray service already stopped")

const menuTitle = "tytimer"

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
	SetSystemTrayWindow(window fyne.Window)
}

// Sender enqueues actions for the timer owner.
type Sender interface {
	Send(action actions.Action) error
}

// Icons shown in the status bar.
type Icons struct {
	Running fyne.Resource
	Paused  fyne.Resource
}

// Manager handles system tray state. Menu callbacks never touch the countdown;
// they only enqueue actions.
type Manager struct {
	mu         sync.Mutex
	host       Host
	sender     Sender
	icons      Icons
	logger     zerolog.Logger
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	label      string
	running    bool
	iconSet    bool
	stopped    bool
}

// New creates a tray manager and installs its menu.
func New(host Host, sender Sender, icons Icons, logger zerolog.Logger) *Manager {
	manager := &Manager{
		host:    host,
		sender:  sender,
		icons:   icons,
		logger:  logger.With().Str("component", "tray").Logger(),
		running: true,
	}

	manager.statusItem = fyne.NewMenuItem(i18n.Tf("Remaining %s", "..."), nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem(i18n.T("Pause"), func() {
		manager.send(actions.ToggleRunning)
	})

	manager.refreshMenu()
	return manager
}

// Render updates the status line, the toggle label and the icon.
func (manager *Manager) Render(label string, running bool) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.stopped {
		return ErrTrayStopped
	}

	changedState := running != manager.running || !manager.iconSet
	manager.label = label
	manager.running = running

	status := i18n.Tf("Remaining %s", label)
	if !running {
		status = fmt.Sprintf("%s %s", status, i18n.T("(paused)"))
	}
	manager.statusItem.Label = status
	if running {
		manager.toggleItem.Label = i18n.T("Pause")
	} else {
		manager.toggleItem.Label = i18n.T("Resume")
	}

	if changedState {
		manager.refreshIcon()
	}
	manager.refreshMenu()
	return nil
}

// ShowOnClick makes a click on the tray icon toggle window. The menu stays on
// the secondary click.
func (manager *Manager) ShowOnClick(window fyne.Window) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.stopped {
		return
	}
	manager.host.SetSystemTrayWindow(window)
}

// Shutdown stops the tray. Later renders fail with ErrTrayStopped.
func (manager *Manager) Shutdown() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.stopped {
		return
	}
	manager.stopped = true
	manager.host.SetSystemTrayMenu(fyne.NewMenu(menuTitle))
	manager.logger.Debug().Msg("tray stopped")
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.statusItem.Label
}

func (manager *Manager) send(action actions.Action) {
	if err := manager.sender.Send(action); err != nil {
		manager.logger.Warn().Err(err).Stringer("action", action).Msg("drop tray action")
	}
}

func (manager *Manager) refreshIcon() {
	icon := manager.icons.Running
	if !manager.running {
		icon = manager.icons.Paused
	}
	if icon == nil {
		return
	}
	manager.host.SetSystemTrayIcon(icon)
	manager.iconSet = true
}

func (manager *Manager) refreshMenu() {
	manager.host.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		manager.toggleItem,
		fyne.NewMenuItem(i18n.T("Show Alarm Window"), func() {
			manager.send(actions.ShowAlarm)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("Quit"), func() {
			manager.send(actions.Quit)
		}),
	))
}
