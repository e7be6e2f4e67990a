package preferences

import (
	"time"

	"ortimer/internal/core/countdown"
	"ortimer/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	MaxMinute    int
	ChimeEnabled bool
	ChimeDelay   time.Duration
	Volume       float64

	RememberLast bool
	LastValue    countdown.Value
}

// DefaultSettings returns default settings for OrTimer.
func DefaultSettings() Settings {
	return Settings{
		MaxMinute:    model.MaxMinuteLong,
		ChimeEnabled: true,
		ChimeDelay:   500 * time.Millisecond,
		Volume:       0.6,
		RememberLast: true,
	}
}

// CountdownConfig converts settings to CountdownConfig.
func (settings Settings) CountdownConfig() model.CountdownConfig {
	return model.CountdownConfig{
		MaxMinute:    settings.MaxMinute,
		TickInterval: time.Second,
		ChimeEnabled: settings.ChimeEnabled,
		ChimeDelay:   settings.ChimeDelay,
	}.Normalized()
}
