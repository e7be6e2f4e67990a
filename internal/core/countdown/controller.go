package countdown

import (
	"log/slog"
	"sync"
	"time"

	"ortimer/internal/core/model"
)

// Chime plays the completion sound. Play may block until the sound ends.
type Chime interface {
	Play()
}

// Config contains the collaborators of a Controller.
type Config struct {
	Clock Clock
	// Dispatcher receives every tick. Without one, ticks run on the ticker
	// goroutine.
	Dispatcher Dispatcher
	Chime      Chime
	Logger     *slog.Logger
}

type subscription struct {
	id      uint64
	handler func(Event)
}

// Controller is the countdown state machine. Commands may be called from any
// goroutine; observers are notified on the caller's goroutine for commands
// and on the dispatcher for ticks.
type Controller struct {
	mu         sync.Mutex
	config     model.CountdownConfig
	options    Config
	logger     *slog.Logger
	counter    *Counter
	state      State
	ticker     Ticker
	stopCh     chan struct{}
	generation uint64
	handlers   []subscription
	nextID     uint64
	closed     bool
	chimes     sync.WaitGroup
}

// New creates a Controller in standby at 00:00.
func New(config model.CountdownConfig, options Config) *Controller {
	config = config.Normalized()
	if options.Clock == nil {
		options.Clock = RealClock{}
	}
	if options.Dispatcher == nil {
		options.Dispatcher = DispatcherFunc(func(fn func()) { fn() })
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		config:  config,
		options: options,
		logger:  logger.With("component", "countdown"),
		counter: NewCounter(config.MaxMinute),
		state:   StateStandby,
	}
}

// Subscribe registers an observer and returns a function that removes it.
func (controller *Controller) Subscribe(handler func(Event)) func() {
	if handler == nil {
		return func() {}
	}
	controller.mu.Lock()
	controller.nextID++
	id := controller.nextID
	controller.handlers = append(controller.handlers, subscription{id: id, handler: handler})
	controller.mu.Unlock()

	return func() {
		controller.mu.Lock()
		defer controller.mu.Unlock()
		for index, sub := range controller.handlers {
			if sub.id == id {
				controller.handlers = append(controller.handlers[:index], controller.handlers[index+1:]...)
				return
			}
		}
	}
}

// Snapshot returns the current value and state.
func (controller *Controller) Snapshot() (Value, State) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.counter.Value(), controller.state
}

// Value returns the current reading.
func (controller *Controller) Value() Value {
	value, _ := controller.Snapshot()
	return value
}

// State returns the current mode.
func (controller *Controller) State() State {
	_, state := controller.Snapshot()
	return state
}

// IncrementMinute adds one minute.
func (controller *Controller) IncrementMinute() {
	controller.adjust((*Counter).IncrementMinute)
}

// DecrementMinute removes one minute.
func (controller *Controller) DecrementMinute() {
	controller.adjust((*Counter).DecrementMinute)
}

// IncrementSecond adds one second.
func (controller *Controller) IncrementSecond() {
	controller.adjust((*Counter).IncrementSecond)
}

// DecrementSecond removes one second.
func (controller *Controller) DecrementSecond() {
	controller.adjust((*Counter).DecrementSecond)
}

// Set dials in a value directly, clamped to the configured bounds.
func (controller *Controller) Set(minute, second int) {
	controller.adjust(func(counter *Counter) bool {
		return counter.Set(minute, second)
	})
}

// UpdateConfig applies new settings. A new tick interval takes effect on the
// next Start.
func (controller *Controller) UpdateConfig(config model.CountdownConfig) {
	config = config.Normalized()
	controller.adjust(func(counter *Counter) bool {
		controller.config = config
		return counter.SetMaxMinute(config.MaxMinute)
	})
}

// Start begins counting down. It does nothing when the value is unset or the
// countdown is already running.
func (controller *Controller) Start() {
	controller.mu.Lock()
	if controller.closed || controller.state == StateProcessing {
		controller.mu.Unlock()
		return
	}
	value := controller.counter.Value()
	if value.IsUnset() {
		controller.mu.Unlock()
		controller.logger.Debug("start ignored, timer not set")
		return
	}

	controller.state = StateProcessing
	controller.generation++
	generation := controller.generation
	ticker := controller.options.Clock.NewTicker(controller.config.TickInterval)
	stopCh := make(chan struct{})
	controller.ticker = ticker
	controller.stopCh = stopCh
	controller.mu.Unlock()

	go controller.run(ticker, stopCh, generation)

	controller.logger.Info("countdown started", "remaining", value.String())
	controller.emit(Event{
		Type:  EventStateChange,
		State: StateProcessing,
		Value: value,
		At:    time.Now(),
	})
}

// Stop pauses the countdown, keeping the remaining value.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	if controller.state != StateProcessing {
		controller.mu.Unlock()
		return
	}
	controller.haltLocked()
	value := controller.counter.Value()
	controller.mu.Unlock()

	controller.logger.Info("countdown stopped", "remaining", value.String())
	controller.emit(Event{
		Type:  EventStateChange,
		State: StateStandby,
		Value: value,
		At:    time.Now(),
	})
}

// Reset stops the countdown and returns the value to 00:00.
func (controller *Controller) Reset() {
	controller.mu.Lock()
	wasProcessing := controller.state == StateProcessing
	if wasProcessing {
		controller.haltLocked()
	}
	controller.counter.Reset()
	value := controller.counter.Value()
	controller.mu.Unlock()

	controller.logger.Info("countdown reset")
	now := time.Now()
	if wasProcessing {
		controller.emit(Event{
			Type:  EventStateChange,
			State: StateStandby,
			Value: value,
			At:    now,
		})
	}
	controller.emit(Event{
		Type:  EventValueChanged,
		State: StateStandby,
		Value: value,
		At:    now,
	})
}

// Close stops the countdown, drops all observers and waits for a pending
// chime to finish.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	if controller.state == StateProcessing {
		controller.haltLocked()
	}
	controller.handlers = nil
	controller.mu.Unlock()

	controller.chimes.Wait()
}

func (controller *Controller) run(ticker Ticker, stopCh chan struct{}, generation uint64) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			controller.options.Dispatcher.Do(func() {
				controller.tick(generation)
			})
		}
	}
}

func (controller *Controller) tick(generation uint64) {
	controller.mu.Lock()
	if controller.state != StateProcessing || controller.generation != generation {
		controller.mu.Unlock()
		return
	}

	// The value can be dialed down to zero while running; that ends the run
	// without a chime.
	wasZero := controller.counter.Value().IsZero()
	changed := controller.counter.Tick()
	value := controller.counter.Value()
	finished := value.IsZero()
	if finished {
		controller.haltLocked()
		if !wasZero {
			controller.scheduleChimeLocked()
		}
	}
	controller.mu.Unlock()

	now := time.Now()
	if changed {
		controller.logger.Debug("tick", "remaining", value.String())
		controller.emit(Event{
			Type:  EventValueChanged,
			State: stateFor(finished),
			Value: value,
			At:    now,
		})
	}
	if !finished {
		return
	}

	controller.emit(Event{
		Type:  EventStateChange,
		State: StateStandby,
		Value: value,
		At:    now,
	})
	if !wasZero {
		controller.logger.Info("countdown completed")
		controller.emit(Event{
			Type:  EventCompleted,
			State: StateStandby,
			Value: value,
			At:    now,
		})
	}
}

func (controller *Controller) adjust(op func(*Counter) bool) {
	controller.mu.Lock()
	changed := op(controller.counter)
	value := controller.counter.Value()
	state := controller.state
	controller.mu.Unlock()

	if !changed {
		return
	}
	controller.emit(Event{
		Type:  EventValueChanged,
		State: state,
		Value: value,
		At:    time.Now(),
	})
}

// haltLocked cancels the running ticker. Ticks already handed to the
// dispatcher are discarded by the generation check.
func (controller *Controller) haltLocked() {
	if controller.stopCh != nil {
		close(controller.stopCh)
		controller.stopCh = nil
	}
	if controller.ticker != nil {
		controller.ticker.Stop()
		controller.ticker = nil
	}
	controller.generation++
	controller.state = StateStandby
}

func (controller *Controller) scheduleChimeLocked() {
	chime := controller.options.Chime
	if chime == nil || !controller.config.ChimeEnabled {
		return
	}

	controller.chimes.Add(1)
	play := func() {
		defer controller.chimes.Done()
		chime.Play()
	}
	if controller.config.ChimeDelay <= 0 {
		go play()
		return
	}
	controller.options.Clock.AfterFunc(controller.config.ChimeDelay, play)
}

func (controller *Controller) emit(event Event) {
	controller.mu.Lock()
	handlers := append([]subscription(nil), controller.handlers...)
	controller.mu.Unlock()

	for _, sub := range handlers {
		sub.handler(event)
	}
}

func stateFor(finished bool) State {
	if finished {
		return StateStandby
	}
	return StateProcessing
}
