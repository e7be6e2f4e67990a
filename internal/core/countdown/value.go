package countdown

import (
	"fmt"

	"ortimer/internal/core/model"
)

const (
	minMinute = 0
	minSecond = 0
	maxSecond = 59
	maxField  = 99
)

// Value is a snapshot of the timer reading.
type Value struct {
	Minute int
	Second int
}

// IsZero reports whether the countdown has reached 00:00.
func (value Value) IsZero() bool {
	return value.Minute == minMinute && value.Second == minSecond
}

// IsUnset reports whether nothing has been dialed in yet.
func (value Value) IsUnset() bool {
	return value.Minute <= minMinute && value.Second <= minSecond
}

// Seconds returns the total number of seconds left.
func (value Value) Seconds() int {
	return value.Minute*60 + value.Second
}

// String renders the value as MM:SS.
func (value Value) String() string {
	return Format(value.Minute) + ":" + Format(value.Second)
}

// Format returns a two-character zero-padded field.
func Format(field int) string {
	if field < 0 {
		field = 0
	}
	if field > maxField {
		field = maxField
	}
	return fmt.Sprintf("%02d", field)
}

// Counter is a bounded minute/second pair. It is not safe for concurrent use;
// the controller serializes access to it.
type Counter struct {
	value     Value
	maxMinute int
}

// NewCounter creates a counter at 00:00 bounded by maxMinute (59 or 99).
func NewCounter(maxMinute int) *Counter {
	return &Counter{maxMinute: normalizeMaxMinute(maxMinute)}
}

// Value returns the current reading.
func (counter *Counter) Value() Value {
	return counter.value
}

// MaxMinute returns the upper bound of the minute field.
func (counter *Counter) MaxMinute() int {
	return counter.maxMinute
}

// SetMaxMinute changes the minute bound and clamps the current value.
func (counter *Counter) SetMaxMinute(maxMinute int) bool {
	counter.maxMinute = normalizeMaxMinute(maxMinute)
	return counter.Set(counter.value.Minute, counter.value.Second)
}

// Set assigns a value, clamping each field into range.
func (counter *Counter) Set(minute, second int) bool {
	next := Value{
		Minute: clamp(minute, minMinute, counter.maxMinute),
		Second: clamp(second, minSecond, maxSecond),
	}
	return counter.replace(next)
}

// IncrementMinute adds a minute unless the bound is reached.
func (counter *Counter) IncrementMinute() bool {
	if counter.value.Minute >= counter.maxMinute {
		return false
	}
	counter.value.Minute++
	return true
}

// DecrementMinute removes a minute unless already at zero.
func (counter *Counter) DecrementMinute() bool {
	if counter.value.Minute <= minMinute {
		return false
	}
	counter.value.Minute--
	return true
}

// IncrementSecond adds a second, carrying into the minute field at 59.
func (counter *Counter) IncrementSecond() bool {
	if counter.value.Second < maxSecond {
		counter.value.Second++
		return true
	}
	if counter.value.Minute >= counter.maxMinute {
		return false
	}
	counter.value.Second = minSecond
	counter.value.Minute++
	return true
}

// DecrementSecond removes a second, borrowing from the minute field at 0.
func (counter *Counter) DecrementSecond() bool {
	if counter.value.Second > minSecond {
		counter.value.Second--
		return true
	}
	if counter.value.Minute <= minMinute {
		return false
	}
	counter.value.Second = maxSecond
	counter.value.Minute--
	return true
}

// Tick lets one second elapse. At 00:00 it does nothing.
func (counter *Counter) Tick() bool {
	return counter.DecrementSecond()
}

// Reset returns the counter to 00:00.
func (counter *Counter) Reset() bool {
	return counter.replace(Value{})
}

func (counter *Counter) replace(next Value) bool {
	if next == counter.value {
		return false
	}
	counter.value = next
	return true
}

func normalizeMaxMinute(maxMinute int) int {
	if maxMinute == model.MaxMinuteShort {
		return model.MaxMinuteShort
	}
	return model.MaxMinuteLong
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
