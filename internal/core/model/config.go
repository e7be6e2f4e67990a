package model

import "time"

// Minute bounds supported by the counter.
const (
	MaxMinuteShort = 59
	MaxMinuteLong  = 99
)

// CountdownConfig contains runtime settings for the countdown controller.
type CountdownConfig struct {
	MaxMinute    int
	TickInterval time.Duration

	ChimeEnabled bool
	ChimeDelay   time.Duration
}

// DefaultCountdownConfig returns the settings used when nothing is configured.
func DefaultCountdownConfig() CountdownConfig {
	return CountdownConfig{
		MaxMinute:    MaxMinuteLong,
		TickInterval: time.Second,
		ChimeEnabled: true,
		ChimeDelay:   500 * time.Millisecond,
	}
}

// Normalized returns a copy with out-of-range fields replaced by defaults.
func (config CountdownConfig) Normalized() CountdownConfig {
	defaults := DefaultCountdownConfig()
	if config.MaxMinute != MaxMinuteShort && config.MaxMinute != MaxMinuteLong {
		config.MaxMinute = defaults.MaxMinute
	}
	if config.TickInterval <= 0 {
		config.TickInterval = defaults.TickInterval
	}
	if config.ChimeDelay < 0 {
		config.ChimeDelay = 0
	}
	return config
}
