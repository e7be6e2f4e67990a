package timerview

import (
	"io"
	"log/slog"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ortimer/internal/core/countdown"
	"ortimer/internal/core/model"
)

type fakeController struct {
	calls    map[string]int
	value    countdown.Value
	state    countdown.State
	handlers []func(countdown.Event)
}

func newFakeController() *fakeController {
	return &fakeController{calls: map[string]int{}, state: countdown.StateStandby}
}

func (fake *fakeController) IncrementMinute() { fake.calls["IncrementMinute"]++ }
func (fake *fakeController) DecrementMinute() { fake.calls["DecrementMinute"]++ }
func (fake *fakeController) IncrementSecond() { fake.calls["IncrementSecond"]++ }
func (fake *fakeController) DecrementSecond() { fake.calls["DecrementSecond"]++ }
func (fake *fakeController) Start()           { fake.calls["Start"]++ }
func (fake *fakeController) Stop()            { fake.calls["Stop"]++ }
func (fake *fakeController) Reset()           { fake.calls["Reset"]++ }

func (fake *fakeController) Snapshot() (countdown.Value, countdown.State) {
	return fake.value, fake.state
}

func (fake *fakeController) Subscribe(handler func(countdown.Event)) func() {
	fake.handlers = append(fake.handlers, handler)
	return func() { fake.handlers = nil }
}

func (fake *fakeController) emit(event countdown.Event) {
	for _, handler := range fake.handlers {
		handler(event)
	}
}

func TestButtonsInvokeCommands(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	fake := newFakeController()
	fake.value = countdown.Value{Second: 5}
	view := New(app, fake)

	test.Tap(view.minutePlus)
	test.Tap(view.minuteMinus)
	test.Tap(view.secondPlus)
	test.Tap(view.secondMinus)
	test.Tap(view.startButton)
	test.Tap(view.resetButton)

	for _, name := range []string{"IncrementMinute", "DecrementMinute", "IncrementSecond", "DecrementSecond", "Start", "Reset"} {
		assert.Equal(t, 1, fake.calls[name], name)
	}
}

func TestInitialRender(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	fake := newFakeController()
	fake.value = countdown.Value{Minute: 4, Second: 7}
	view := New(app, fake)

	assert.Equal(t, "04", view.minuteText.Text)
	assert.Equal(t, "07", view.secondText.Text)
	assert.False(t, view.startButton.Disabled())
	assert.True(t, view.stopButton.Disabled())
}

func TestStartDisabledWhenUnset(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	view := New(app, newFakeController())

	assert.True(t, view.startButton.Disabled())
	assert.Equal(t, "00", view.minuteText.Text)
}

func TestEventsUpdateView(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	fake := newFakeController()
	view := New(app, fake)

	fake.emit(countdown.Event{
		Type:  countdown.EventValueChanged,
		State: countdown.StateProcessing,
		Value: countdown.Value{Minute: 1, Second: 9},
	})
	assert.Equal(t, "01", view.minuteText.Text)
	assert.Equal(t, "09", view.secondText.Text)
	assert.True(t, view.startButton.Disabled())
	assert.False(t, view.stopButton.Disabled())
	assert.Equal(t, "OrTimer - 01:09", view.window.Title())

	fake.emit(countdown.Event{Type: countdown.EventStateChange, State: countdown.StateStandby})
	fake.emit(countdown.Event{Type: countdown.EventCompleted, State: countdown.StateStandby})
	assert.Equal(t, "00", view.secondText.Text)
	assert.Equal(t, "Time is up!", view.statusLabel.Text)
	assert.Equal(t, "OrTimer", view.window.Title())
}

func TestCloseStopsTimer(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	fake := newFakeController()
	view := New(app, fake)
	closed := false
	view.SetOnClose(func() { closed = true })

	view.handleClose()

	assert.Equal(t, 1, fake.calls["Stop"])
	assert.True(t, closed)
}

func TestDetach(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	fake := newFakeController()
	view := New(app, fake)

	view.Detach()
	fake.emit(countdown.Event{Value: countdown.Value{Minute: 9}})
	assert.Equal(t, "00", view.minuteText.Text)
}

func TestWithCountdownController(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	controller := countdown.New(model.DefaultCountdownConfig(), countdown.Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	defer controller.Close()
	view := New(app, controller)

	test.Tap(view.minutePlus)
	test.Tap(view.minutePlus)
	test.Tap(view.secondMinus)

	require.Equal(t, countdown.Value{Minute: 1, Second: 59}, controller.Value())
	assert.Equal(t, "01", view.minuteText.Text)
	assert.Equal(t, "59", view.secondText.Text)

	test.Tap(view.resetButton)
	assert.Equal(t, "00", view.minuteText.Text)
	assert.Equal(t, "00", view.secondText.Text)
	assert.True(t, view.startButton.Disabled())
}
