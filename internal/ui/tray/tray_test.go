package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tytimer/internal/core/actions"
)

type fakeHost struct {
	menu   *fyne.Menu
	icons  []fyne.Resource
	window fyne.Window
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) { host.menu = menu }

func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) {
	host.icons = append(host.icons, icon)
}

func (host *fakeHost) SetSystemTrayWindow(window fyne.Window) { host.window = window }

func (host *fakeHost) item(t *testing.T, label string) *fyne.MenuItem {
	t.Helper()
	require.NotNil(t, host.menu)
	for _, item := range host.menu.Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

var (
	runningIcon = fyne.NewStaticResource("running.svg", []byte("<svg/>"))
	pausedIcon  = fyne.NewStaticResource("paused.svg", []byte("<svg/>"))
)

func newManager(t *testing.T) (*Manager, *fakeHost, *actions.Queue) {
	t.Helper()
	host := &fakeHost{}
	queue := actions.NewQueue()
	manager := New(host, queue, Icons{Running: runningIcon, Paused: pausedIcon}, zerolog.Nop())
	return manager, host, queue
}

func drainQueue(queue *actions.Queue) []actions.Action {
	var got []actions.Action
	for {
		action, ok := queue.TryReceive()
		if !ok {
			return got
		}
		got = append(got, action)
	}
}

func TestManager_MenuLayout(t *testing.T) {
	_, host, _ := newManager(t)

	require.Len(t, host.menu.Items, 5)
	assert.True(t, host.menu.Items[0].Disabled, "status line is informational")
	assert.Equal(t, "Pause", host.menu.Items[1].Label)
	assert.Equal(t, "Show Alarm Window", host.menu.Items[2].Label)
	assert.True(t, host.menu.Items[3].IsSeparator)
	assert.Equal(t, "Quit", host.menu.Items[4].Label)
}

func TestManager_MenuItemsOnlyEnqueue(t *testing.T) {
	_, host, queue := newManager(t)

	host.item(t, "Pause").Action()
	host.item(t, "Show Alarm Window").Action()
	host.item(t, "Quit").Action()

	assert.Equal(t, []actions.Action{actions.ToggleRunning, actions.ShowAlarm, actions.Quit}, drainQueue(queue))
}

func TestManager_MenuActionAfterQueueClosed(t *testing.T) {
	_, host, queue := newManager(t)
	queue.Close()

	assert.NotPanics(t, func() { host.item(t, "Quit").Action() })
	assert.Empty(t, drainQueue(queue))
}

func TestManager_Render(t *testing.T) {
	manager, host, _ := newManager(t)

	require.NoError(t, manager.Render("9:59", true))
	assert.Equal(t, "Remaining 9:59", manager.Status())
	assert.Equal(t, "Remaining 9:59", host.menu.Items[0].Label)
	assert.Equal(t, "Pause", host.menu.Items[1].Label)
	assert.Equal(t, []fyne.Resource{runningIcon}, host.icons)

	require.NoError(t, manager.Render("9:59", false))
	assert.Equal(t, "Remaining 9:59 (paused)", manager.Status())
	assert.Equal(t, "Resume", host.menu.Items[1].Label)
	assert.Equal(t, []fyne.Resource{runningIcon, pausedIcon}, host.icons)

	require.NoError(t, manager.Render("9:59", false))
	assert.Len(t, host.icons, 2, "icon only changes with the running state")
}

func TestManager_ShowOnClick(t *testing.T) {
	manager, host, _ := newManager(t)
	window := test.NewTempApp(t).NewWindow("alert")

	manager.ShowOnClick(window)
	assert.Equal(t, window, host.window)
	require.NotNil(t, host.menu, "menu installed before the click window")
}

func TestManager_ShowOnClickAfterShutdown(t *testing.T) {
	manager, host, _ := newManager(t)
	manager.Shutdown()

	manager.ShowOnClick(test.NewTempApp(t).NewWindow("alert"))
	assert.Nil(t, host.window)
}

func TestManager_Shutdown(t *testing.T) {
	manager, host, _ := newManager(t)

	manager.Shutdown()
	manager.Shutdown()

	assert.Empty(t, host.menu.Items)
	assert.ErrorIs(t, manager.Render("1:00", true), ErrTrayStopped)
}

func TestNoop(t *testing.T) {
	var tray Noop
	assert.NoError(t, tray.Render("0:01", true))
	assert.NotPanics(t, tray.Shutdown)
}
