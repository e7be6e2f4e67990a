package countdown

import (
	"context"
	"time"
)

// Dispatcher runs work on the context that owns observable state, such as
// the UI goroutine.
type Dispatcher interface {
	Do(fn func())
}

// DispatcherFunc adapts a function such as fyne.Do to Dispatcher.
type DispatcherFunc func(fn func())

// Do calls the wrapped function.
func (dispatch DispatcherFunc) Do(fn func()) {
	dispatch(fn)
}

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Clock creates tickers and delayed callbacks.
type Clock interface {
	NewTicker(interval time.Duration) Ticker
	AfterFunc(delay time.Duration, fn func()) Timer
}

// RealClock implements Clock with the time package.
type RealClock struct{}

// NewTicker wraps time.NewTicker.
func (RealClock) NewTicker(interval time.Duration) Ticker {
	return realTicker{ticker: time.NewTicker(interval)}
}

// AfterFunc wraps time.AfterFunc.
func (RealClock) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

type realTicker struct {
	ticker *time.Ticker
}

func (ticker realTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker realTicker) Stop() {
	ticker.ticker.Stop()
}

// Loop is a single-goroutine dispatcher for running the controller without a
// UI toolkit.
type Loop struct {
	tasks chan func()
	done  chan struct{}
}

// NewLoop creates a loop with the given task buffer.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 1
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Do queues fn for the loop goroutine. Work posted after Run has returned is
// dropped.
func (loop *Loop) Do(fn func()) {
	select {
	case <-loop.done:
	case loop.tasks <- fn:
	}
}

// Run executes queued work until ctx is cancelled.
func (loop *Loop) Run(ctx context.Context) error {
	defer close(loop.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-loop.tasks:
			fn()
		}
	}
}
