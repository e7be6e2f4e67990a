package preferences

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"ortimer/internal/core/model"
)

const maxChimeDelayMs = 10000

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	maxMinute    *widget.Select
	chime        *widget.Check
	chimeDelay   *widget.Entry
	volume       *widget.Slider
	rememberLast *widget.Check
	saveButton   *widget.Button
	cancelButton *widget.Button
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("OrTimer Settings")

	maxMinute := widget.NewSelect([]string{
		strconv.Itoa(model.MaxMinuteShort),
		strconv.Itoa(model.MaxMinuteLong),
	}, nil)
	chime := widget.NewCheck("Play chime when time is up", nil)
	chimeDelay := widget.NewEntry()
	volume := widget.NewSlider(0, 1)
	volume.Step = 0.05
	rememberLast := widget.NewCheck("Remember last timer value", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Longest timer"), maxMinute, widget.NewLabel("min")),
		rememberLast,
		widget.NewLabelWithStyle("Chime", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		chime,
		container.NewHBox(widget.NewLabel("Delay before chime"), chimeDelay, widget.NewLabel("ms")),
		widget.NewLabel("Volume"),
		volume,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 320))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		maxMinute:    maxMinute,
		chime:        chime,
		chimeDelay:   chimeDelay,
		volume:       volume,
		rememberLast: rememberLast,
		saveButton:   saveButton,
		cancelButton: cancelButton,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.maxMinute.SetSelected(strconv.Itoa(settings.CountdownConfig().MaxMinute))
	prefs.chime.SetChecked(settings.ChimeEnabled)
	prefs.chimeDelay.SetText(strconv.Itoa(int(settings.ChimeDelay / time.Millisecond)))
	prefs.volume.SetValue(settings.Volume)
	prefs.rememberLast.SetChecked(settings.RememberLast)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if maxMinute, err := strconv.Atoi(prefs.maxMinute.Selected); err == nil {
		settings.MaxMinute = maxMinute
	}
	if delayMs, ok := parseDelay(prefs.chimeDelay.Text); ok {
		settings.ChimeDelay = time.Duration(delayMs) * time.Millisecond
	}
	settings.ChimeEnabled = prefs.chime.Checked
	settings.Volume = prefs.volume.Value
	settings.RememberLast = prefs.rememberLast.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parseDelay(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 || parsed > maxChimeDelayMs {
		return 0, false
	}
	return parsed, true
}
