package models

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/hourlog/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// List settings are stored as JSON arrays.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingColorPresets:
			if err := json.Unmarshal([]byte(value), &settings.ColorPresets); err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
		case constants.SettingActivityCategories:
			if err := json.Unmarshal([]byte(value), &settings.ActivityCategories); err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) (map[string]string, error) {
	presets, err := json.Marshal(nonNil(settings.ColorPresets))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", constants.SettingColorPresets, err)
	}
	categories, err := json.Marshal(nonNil(settings.ActivityCategories))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", constants.SettingActivityCategories, err)
	}
	return map[string]string{
		constants.SettingColorPresets:       string(presets),
		constants.SettingActivityCategories: string(categories),
		constants.SettingTimezone:           settings.Timezone,
	}, nil
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.ColorPresets == nil {
		settings.ColorPresets = []string{}
	}
	if settings.ActivityCategories == nil {
		settings.ActivityCategories = []string{}
	}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
