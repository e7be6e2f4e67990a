package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ortimer/internal/core/countdown"
	"ortimer/internal/core/model"
	"ortimer/internal/ui/preferences"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

const maxChimeDelay = 10 * time.Second

type yamlSettings struct {
	MaxMinute    int      `yaml:"max_minute"`
	ChimeEnabled *bool    `yaml:"chime_enabled"`
	ChimeDelayMs *int     `yaml:"chime_delay_ms"`
	Volume       *float64 `yaml:"volume"`
	RememberLast *bool    `yaml:"remember_last"`
	LastMinute   int      `yaml:"last_minute"`
	LastSecond   int      `yaml:"last_second"`
}

// SettingsPath returns the settings file location for appName under the XDG
// config home, creating the parent directory if needed.
func SettingsPath(appName string) (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(appName, settingsFileName))
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return path, nil
}

// LoadSettings reads user preferences from the YAML file at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the YAML file at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	chimeDelayMs := int(settings.ChimeDelay / time.Millisecond)
	fileData := yamlSettings{
		MaxMinute:    settings.MaxMinute,
		ChimeEnabled: &settings.ChimeEnabled,
		ChimeDelayMs: &chimeDelayMs,
		Volume:       &settings.Volume,
		RememberLast: &settings.RememberLast,
		LastMinute:   settings.LastValue.Minute,
		LastSecond:   settings.LastValue.Second,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.MaxMinute == model.MaxMinuteShort || fileData.MaxMinute == model.MaxMinuteLong {
		settings.MaxMinute = fileData.MaxMinute
	}
	if fileData.ChimeEnabled != nil {
		settings.ChimeEnabled = *fileData.ChimeEnabled
	}
	if fileData.ChimeDelayMs != nil {
		delay := time.Duration(*fileData.ChimeDelayMs) * time.Millisecond
		if delay >= 0 && delay <= maxChimeDelay {
			settings.ChimeDelay = delay
		}
	}
	if fileData.Volume != nil && *fileData.Volume >= 0 && *fileData.Volume <= 1 {
		settings.Volume = *fileData.Volume
	}
	if fileData.RememberLast != nil {
		settings.RememberLast = *fileData.RememberLast
	}

	if fileData.LastMinute >= 0 && fileData.LastMinute <= settings.MaxMinute &&
		fileData.LastSecond >= 0 && fileData.LastSecond <= 59 {
		settings.LastValue = countdown.Value{Minute: fileData.LastMinute, Second: fileData.LastSecond}
	}
}
