package countdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ortimer/internal/core/model"
)

func TestFormat(t *testing.T) {
	cases := map[int]string{
		0:   "00",
		9:   "09",
		10:  "10",
		59:  "59",
		99:  "99",
		-3:  "00",
		120: "99",
	}
	for field, expected := range cases {
		assert.Equal(t, expected, Format(field), "Format(%d)", field)
	}
}

func TestValueFlags(t *testing.T) {
	assert.True(t, Value{}.IsZero())
	assert.True(t, Value{}.IsUnset())
	assert.False(t, Value{Second: 1}.IsZero())
	assert.False(t, Value{Minute: 1}.IsUnset())
	assert.Equal(t, "07:05", Value{Minute: 7, Second: 5}.String())
	assert.Equal(t, 425, Value{Minute: 7, Second: 5}.Seconds())
}

func TestNewCounterNormalizesBound(t *testing.T) {
	assert.Equal(t, 59, NewCounter(59).MaxMinute())
	assert.Equal(t, 99, NewCounter(99).MaxMinute())
	assert.Equal(t, 99, NewCounter(0).MaxMinute())
	assert.Equal(t, 99, NewCounter(-1).MaxMinute())
}

func TestMinuteBounds(t *testing.T) {
	counter := NewCounter(model.MaxMinuteShort)

	assert.False(t, counter.DecrementMinute(), "decrement at zero must be a no-op")
	assert.Equal(t, Value{}, counter.Value())

	for i := 0; i < 100; i++ {
		counter.IncrementMinute()
	}
	assert.Equal(t, Value{Minute: 59}, counter.Value())
	assert.False(t, counter.IncrementMinute())

	assert.True(t, counter.DecrementMinute())
	assert.Equal(t, Value{Minute: 58}, counter.Value())
}

func TestIncrementSecondCarries(t *testing.T) {
	counter := NewCounter(model.MaxMinuteLong)
	counter.Set(3, 59)

	require.True(t, counter.IncrementSecond())
	assert.Equal(t, Value{Minute: 4, Second: 0}, counter.Value())

	counter.Set(99, 59)
	assert.False(t, counter.IncrementSecond())
	assert.Equal(t, Value{Minute: 99, Second: 59}, counter.Value())

	counter.Set(99, 58)
	assert.True(t, counter.IncrementSecond())
	assert.Equal(t, Value{Minute: 99, Second: 59}, counter.Value())
}

func TestDecrementSecondBorrows(t *testing.T) {
	counter := NewCounter(model.MaxMinuteLong)
	counter.Set(2, 0)

	require.True(t, counter.DecrementSecond())
	assert.Equal(t, Value{Minute: 1, Second: 59}, counter.Value())

	counter.Reset()
	assert.False(t, counter.DecrementSecond())
	assert.Equal(t, Value{}, counter.Value())
}

func TestSecondRoundTrip(t *testing.T) {
	for _, maxMinute := range []int{model.MaxMinuteShort, model.MaxMinuteLong} {
		counter := NewCounter(maxMinute)
		for minute := 0; minute <= maxMinute; minute++ {
			for second := 0; second <= 59; second++ {
				counter.Set(minute, second)
				start := counter.Value()

				incremented := counter.IncrementSecond()
				if minute == maxMinute && second == 59 {
					require.False(t, incremented)
					require.Equal(t, start, counter.Value())
					continue
				}
				require.True(t, incremented)
				require.True(t, counter.DecrementSecond())
				require.Equal(t, start, counter.Value(), "round trip from %s", start)
			}
		}
	}
}

func TestTickReachesZero(t *testing.T) {
	starts := []Value{
		{Minute: 0, Second: 1},
		{Minute: 0, Second: 59},
		{Minute: 1, Second: 0},
		{Minute: 2, Second: 30},
		{Minute: 99, Second: 59},
	}
	for _, start := range starts {
		counter := NewCounter(model.MaxMinuteLong)
		counter.Set(start.Minute, start.Second)

		for i := 0; i < start.Seconds(); i++ {
			require.False(t, counter.Value().IsZero(), "reached zero early from %s", start)
			require.True(t, counter.Tick())
		}
		assert.Equal(t, Value{}, counter.Value(), "from %s", start)
		assert.False(t, counter.Tick(), "tick at zero must be a no-op")
		assert.Equal(t, Value{}, counter.Value())
	}
}

func TestSetClampsAndReportsChange(t *testing.T) {
	counter := NewCounter(model.MaxMinuteShort)

	assert.True(t, counter.Set(120, 75))
	assert.Equal(t, Value{Minute: 59, Second: 59}, counter.Value())
	assert.False(t, counter.Set(59, 59))

	assert.True(t, counter.Set(-4, -1))
	assert.Equal(t, Value{}, counter.Value())
}

func TestSetMaxMinuteClampsValue(t *testing.T) {
	counter := NewCounter(model.MaxMinuteLong)
	counter.Set(80, 10)

	assert.True(t, counter.SetMaxMinute(model.MaxMinuteShort))
	assert.Equal(t, Value{Minute: 59, Second: 10}, counter.Value())

	assert.False(t, counter.SetMaxMinute(model.MaxMinuteLong))
	assert.Equal(t, 99, counter.MaxMinute())
}

func TestResetReportsChange(t *testing.T) {
	counter := NewCounter(model.MaxMinuteLong)
	assert.False(t, counter.Reset())

	counter.Set(1, 1)
	assert.True(t, counter.Reset())
	assert.Equal(t, Value{}, counter.Value())
}
