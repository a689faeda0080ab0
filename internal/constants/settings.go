package constants

const (
	// Setting keys
	SettingColorPresets       = "color_presets"
	SettingActivityCategories = "activity_categories"
	SettingTimezone           = "timezone"

	// Default Settings Values
	DefaultTimezone = "Local" // Use system local timezone by default
)
