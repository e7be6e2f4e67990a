package countdown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ortimer/internal/core/model"
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	loop := NewLoop(4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	results := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		value := i
		loop.Do(func() { results <- value })
	}
	for i := 1; i <= 3; i++ {
		select {
		case got := <-results:
			assert.Equal(t, i, got)
		case <-time.After(time.Second):
			t.Fatal("task did not run")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoopDropsWorkAfterStop(t *testing.T) {
	loop := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, loop.Run(ctx), context.Canceled)

	returned := make(chan struct{})
	go func() {
		loop.Do(func() {})
		loop.Do(func() {})
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Do blocked after the loop stopped")
	}
}

func TestControllerOnLoop(t *testing.T) {
	loop := NewLoop(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	clock := &fakeClock{}
	chime := newCountingChime()
	config := model.DefaultCountdownConfig()
	config.ChimeDelay = 0
	controller := New(config, Config{Clock: clock, Dispatcher: loop, Chime: chime})
	events := record(controller)
	controller.Set(0, 3)
	controller.Start()

	ticker := clock.latest(t)
	for i := 0; i < 3; i++ {
		ticker.fire(t)
	}

	require.Eventually(t, func() bool {
		return len(events.ofType(EventCompleted)) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, StateStandby, controller.State())
	chime.requirePlayedOnce(t)
}

func TestDispatcherFunc(t *testing.T) {
	called := false
	DispatcherFunc(func(fn func()) { fn() }).Do(func() { called = true })
	assert.True(t, called)
}
