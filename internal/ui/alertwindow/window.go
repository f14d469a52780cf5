// Package alertwindow is the pop-up shown when the countdown expires.
package alertwindow

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tytimer/internal/core/countdown"
	"tytimer/internal/i18n"
)

// Title is the alert window title.
const Title = "TyTimer"

var (
	normalColor    = color.NRGBA{R: 0, G: 0, B: 0, A: 0}
	highlightColor = color.NRGBA{R: 208, G: 135, B: 112, A: 200}
)

// Callbacks defines alert window button handlers.
type Callbacks struct {
	OnStop  func()
	OnPause func(percent int)
}

// Config defines alert window contents.
type Config struct {
	OriginalSeconds int64
	PausePercents   []int
}

// Window manages the alert UI. It implements orchestrator.Window and
// orchestrator.DisplaySink. All methods must run on the fyne main goroutine.
type Window struct {
	window       fyne.Window
	config       Config
	callbacks    Callbacks
	label        *widget.Label
	background   *canvas.Rectangle
	stopButton   *widget.Button
	pauseButtons []*widget.Button
	closeButton  *widget.Button
	visible      bool
	highlighted  bool
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the alert window. It stays hidden until Show is called.
func New(app fyne.App, config Config, callbacks Callbacks) *Window {
	var window fyne.Window
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
		window.SetTitle(Title)
	} else {
		window = app.NewWindow(Title)
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	alert := &Window{
		window:     window,
		config:     config,
		callbacks:  callbacks,
		label:      widget.NewLabel(""),
		background: canvas.NewRectangle(normalColor),
	}
	alert.label.Alignment = fyne.TextAlignCenter
	alert.label.TextStyle = fyne.TextStyle{Bold: true}
	alert.setLabel(countdown.FormatSeconds(config.OriginalSeconds))

	alert.stopButton = widget.NewButtonWithIcon(i18n.T("Stop"), theme.MediaStopIcon(), func() {
		if alert.callbacks.OnStop != nil {
			alert.callbacks.OnStop()
		}
	})
	alert.stopButton.Importance = widget.DangerImportance

	buttons := []fyne.CanvasObject{alert.stopButton}
	for _, percent := range config.PausePercents {
		button := widget.NewButton(i18n.Tf("Pause %d%%", percent), func() {
			if alert.callbacks.OnPause != nil {
				alert.callbacks.OnPause(percent)
			}
		})
		alert.pauseButtons = append(alert.pauseButtons, button)
		buttons = append(buttons, button)
	}

	alert.closeButton = widget.NewButtonWithIcon(i18n.T("Close"), theme.CancelIcon(), alert.Hide)
	buttons = append(buttons, alert.closeButton)

	content := container.NewVBox(
		alert.label,
		container.NewHBox(buttons...),
	)
	window.SetContent(container.NewStack(alert.background, container.NewPadded(content)))
	window.SetCloseIntercept(alert.Hide)
	window.SetFixedSize(true)

	return alert
}

// Render updates the remaining-time label.
func (alert *Window) Render(label string, running bool) error {
	alert.setLabel(label)
	return nil
}

// Native returns the underlying fyne window, for hosts that show it on their
// own (the tray icon click).
func (alert *Window) Native() fyne.Window {
	return alert.window
}

// Show brings the window to the front.
func (alert *Window) Show() {
	alert.visible = true
	alert.window.Show()
	alert.window.CenterOnScreen()
	alert.window.RequestFocus()
}

// Hide hides the window. The countdown keeps running.
func (alert *Window) Hide() {
	alert.visible = false
	alert.window.Hide()
}

// Visible reports whether Show was called more recently than Hide. A tray
// click toggles the native window directly, so Show and Hide never trust this
// flag to skip work.
func (alert *Window) Visible() bool {
	return alert.visible
}

// SetHighlight tints the window background. Used by the flasher.
func (alert *Window) SetHighlight(on bool) {
	if alert.highlighted == on {
		return
	}
	alert.highlighted = on
	if on {
		alert.background.FillColor = highlightColor
	} else {
		alert.background.FillColor = normalColor
	}
	alert.background.Refresh()
}

func (alert *Window) setLabel(remaining string) {
	alert.label.SetText(i18n.Tf("Remaining: %s / Original: %s",
		remaining, countdown.FormatSeconds(alert.config.OriginalSeconds)))
}
