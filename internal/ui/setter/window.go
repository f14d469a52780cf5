// Package setter is the small window shown when tytimer starts without a
// duration. It asks for minutes and hands them to the caller.
package setter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tytimer/internal/core/countdown"
	"tytimer/internal/i18n"
)

// Window handles the duration prompt.
type Window struct {
	window        fyne.Window
	onStart       func(minutes float64) error
	minutes       *widget.Entry
	status        *widget.Label
	startButton   *widget.Button
	presetButtons []*widget.Button
}

// New creates the setter window. onStart is called with a validated minute
// count; a returned error is shown to the user and the window stays open.
func New(app fyne.App, presets []float64, onStart func(minutes float64) error) *Window {
	window := app.NewWindow(i18n.T("New timer"))

	setter := &Window{
		window:  window,
		onStart: onStart,
		minutes: widget.NewEntry(),
		status:  widget.NewLabel(""),
	}
	setter.minutes.SetPlaceHolder(i18n.T("Minutes"))
	setter.minutes.OnSubmitted = func(string) { setter.handleStart() }
	setter.status.Wrapping = fyne.TextWrapWord
	setter.status.Importance = widget.DangerImportance
	setter.status.Hide()

	setter.startButton = widget.NewButtonWithIcon(i18n.T("Start"), theme.MediaPlayIcon(), setter.handleStart)
	setter.startButton.Importance = widget.HighImportance

	presetRow := container.NewHBox()
	for _, minutes := range presets {
		button := widget.NewButton(i18n.Tf("%v min", minutes), func() {
			setter.minutes.SetText(strconv.FormatFloat(minutes, 'f', -1, 64))
			setter.handleStart()
		})
		setter.presetButtons = append(setter.presetButtons, button)
		presetRow.Add(button)
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Minutes"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		setter.minutes,
		presetRow,
		setter.status,
	)
	buttons := container.NewHBox(layout.NewSpacer(), setter.startButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(320, 160))

	return setter
}

// Show displays the window and focuses the minutes entry.
func (setter *Window) Show() {
	setter.window.Show()
	setter.window.CenterOnScreen()
	setter.window.Canvas().Focus(setter.minutes)
}

// SetOnClosed registers a handler for when the user closes the window.
func (setter *Window) SetOnClosed(handler func()) {
	setter.window.SetOnClosed(handler)
}

func (setter *Window) handleStart() {
	minutes, err := ParseMinutes(setter.minutes.Text)
	if err != nil {
		setter.showError(err)
		return
	}

	if setter.onStart != nil {
		if err := setter.onStart(minutes); err != nil {
			setter.showError(err)
			return
		}
	}
	setter.status.Hide()
	setter.window.Hide()
}

func (setter *Window) showError(err error) {
	setter.status.SetText(err.Error())
	setter.status.Show()
	dialog.ShowError(err, setter.window)
}

// ParseMinutes accepts a positive decimal number, with either a dot or a
// comma as the decimal separator.
func ParseMinutes(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	minutes, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", i18n.T("Minutes must be positive."), countdown.ErrInvalidDuration)
	}
	if _, err := countdown.SecondsFromMinutes(minutes); err != nil {
		return 0, fmt.Errorf("%s: %w", i18n.T("Minutes must be positive."), err)
	}
	return minutes, nil
}

// IsInvalidDuration reports whether err came from ParseMinutes.
func IsInvalidDuration(err error) bool {
	return errors.Is(err, countdown.ErrInvalidDuration)
}
