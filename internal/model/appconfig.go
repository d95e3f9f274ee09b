package model

// Theme variants accepted by AppConfig.Theme.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// AppConfig holds the demo gallery's preferences.
type AppConfig struct {
	// Preset is the name of the preset applied to the showcase button.
	Preset string `json:"preset"`

	// SimulateHaptics logs haptic pulses on platforms without a vibration
	// motor, so feedback can be observed on desktop.
	SimulateHaptics bool `json:"simulate_haptics"`

	// PresetsPath is where user presets are stored. Empty means the default.
	PresetsPath string `json:"presets_path"`

	Theme string `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Preset:          "default",
		SimulateHaptics: false,
		PresetsPath:     "",
		Theme:           ThemeSystem,
	}
}

// ValidTheme reports whether name is one of the supported theme variants.
func ValidTheme(name string) bool {
	switch name {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}
