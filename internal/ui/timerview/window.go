package timerview

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"ortimer/internal/core/countdown"
)

const (
	appTitle  = "OrTimer"
	digitSize = 56
)

var (
	digitColor   = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	runningColor = color.NRGBA{R: 120, G: 210, B: 120, A: 255}
)

// Controller is the part of the countdown controller the view drives.
type Controller interface {
	IncrementMinute()
	DecrementMinute()
	IncrementSecond()
	DecrementSecond()
	Start()
	Stop()
	Reset()
	Snapshot() (countdown.Value, countdown.State)
	Subscribe(handler func(countdown.Event)) func()
}

// Window shows the timer digits and the seven timer commands.
type Window struct {
	window      fyne.Window
	controller  Controller
	minuteText  *canvas.Text
	secondText  *canvas.Text
	statusLabel *widget.Label
	minutePlus  *widget.Button
	minuteMinus *widget.Button
	secondPlus  *widget.Button
	secondMinus *widget.Button
	startButton *widget.Button
	stopButton  *widget.Button
	resetButton *widget.Button
	unsubscribe func()
	onClose     func()
}

// New creates the timer window. Controller events must be delivered on the
// Fyne main goroutine, e.g. by dispatching ticks through fyne.Do.
func New(app fyne.App, controller Controller) *Window {
	window := app.NewWindow(appTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:      window,
		controller:  controller,
		minuteText:  newDigits(),
		secondText:  newDigits(),
		statusLabel: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	}

	view.minutePlus = widget.NewButtonWithIcon("", theme.ContentAddIcon(), controller.IncrementMinute)
	view.minuteMinus = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), controller.DecrementMinute)
	view.secondPlus = widget.NewButtonWithIcon("", theme.ContentAddIcon(), controller.IncrementSecond)
	view.secondMinus = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), controller.DecrementSecond)
	view.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), controller.Start)
	view.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaPauseIcon(), controller.Stop)
	view.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), controller.Reset)

	separator := canvas.NewText(":", digitColor)
	separator.TextSize = digitSize
	separator.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	minuteColumn := container.NewVBox(view.minutePlus, container.NewCenter(view.minuteText), view.minuteMinus)
	secondColumn := container.NewVBox(view.secondPlus, container.NewCenter(view.secondText), view.secondMinus)
	digits := container.NewHBox(layout.NewSpacer(), minuteColumn, container.NewCenter(separator), secondColumn, layout.NewSpacer())
	commands := container.NewGridWithColumns(3, view.startButton, view.stopButton, view.resetButton)

	window.SetContent(container.NewPadded(container.NewVBox(digits, view.statusLabel, commands)))
	window.SetCloseIntercept(view.handleClose)
	window.Resize(fyne.NewSize(320, 260))

	view.unsubscribe = controller.Subscribe(view.handleEvent)
	value, state := controller.Snapshot()
	view.render(value, state)

	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Window returns the underlying Fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// SetOnClose sets the handler run after the timer is stopped on close. Without
// one the window just hides.
func (view *Window) SetOnClose(handler func()) {
	view.onClose = handler
}

// Detach stops listening to the controller.
func (view *Window) Detach() {
	if view.unsubscribe != nil {
		view.unsubscribe()
		view.unsubscribe = nil
	}
}

func (view *Window) handleClose() {
	view.controller.Stop()
	if view.onClose != nil {
		view.onClose()
		return
	}
	view.window.Hide()
}

func (view *Window) handleEvent(event countdown.Event) {
	view.render(event.Value, event.State)
	if event.Type == countdown.EventCompleted {
		view.statusLabel.SetText("Time is up!")
	}
}

func (view *Window) render(value countdown.Value, state countdown.State) {
	view.minuteText.Text = countdown.Format(value.Minute)
	view.secondText.Text = countdown.Format(value.Second)

	textColor := color.Color(digitColor)
	if state == countdown.StateProcessing {
		textColor = runningColor
	}
	view.minuteText.Color = textColor
	view.secondText.Color = textColor
	view.minuteText.Refresh()
	view.secondText.Refresh()

	if state == countdown.StateProcessing {
		view.startButton.Disable()
		view.stopButton.Enable()
		view.statusLabel.SetText("Counting down")
		view.window.SetTitle(appTitle + " - " + value.String())
		return
	}

	if value.IsUnset() {
		view.startButton.Disable()
	} else {
		view.startButton.Enable()
	}
	view.stopButton.Disable()
	view.statusLabel.SetText("")
	view.window.SetTitle(appTitle)
}

func newDigits() *canvas.Text {
	text := canvas.NewText("00", digitColor)
	text.TextSize = digitSize
	text.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	text.Alignment = fyne.TextAlignCenter
	return text
}
