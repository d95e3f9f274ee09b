package model

import (
	"time"

	"github.com/google/uuid"
)

// StylePreset is a named, reusable ButtonStyle.
type StylePreset struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	IsBuiltIn   bool        `json:"is_built_in"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Style       ButtonStyle `json:"style"`
}

// NewStylePreset creates a user preset with a fresh ID.
func NewStylePreset(name, description string, style ButtonStyle) StylePreset {
	now := time.Now().UTC().Format(time.RFC3339)
	return StylePreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Style:       style,
	}
}

// BuiltInPresets returns the presets shipped with the library.
func BuiltInPresets() []StylePreset {
	pill := DefaultButtonStyle()
	pill.BackgroundColor = "#2196f3"
	pill.TempButtonTextColor = "#ffffff"
	pill.Padding = Insets{Top: 8, Right: 16, Bottom: 8, Left: 16}
	pill.LeadingTrailingSpacing = 6
	pill = pill.WithBorderRadius(DefaultSplashRadius)

	compact := DefaultButtonStyle()
	compact.BackgroundColor = "#eeeeee"
	compact.Padding = UniformInsets(4)
	compact.LeadingTrailingSpacing = 4
	compact.AnimationScale = 0.95
	compact.AnimationPauseMillis = 60
	compact.AnimationScaleMillis = 60

	icon := DefaultButtonStyle()
	icon.HasFeedback = false
	icon.Padding = UniformInsets(6)
	icon.AnimationScale = 0.8

	return []StylePreset{
		{ID: "default", Name: "default", Description: "Plain button with default timings", IsBuiltIn: true, Style: DefaultButtonStyle()},
		{ID: "pill", Name: "pill", Description: "Filled pill with wide padding", IsBuiltIn: true, Style: pill},
		{ID: "compact", Name: "compact", Description: "Dense button with a subtle dip", IsBuiltIn: true, Style: compact},
		{ID: "icon", Name: "icon", Description: "Icon-only button with a deep dip and no haptics", IsBuiltIn: true, Style: icon},
	}
}

// PresetStore holds a collection of style presets.
type PresetStore struct {
	Presets []StylePreset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []StylePreset{},
	}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p StylePreset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *StylePreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *StylePreset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names in store order, for UI dropdowns.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}

// WithBuiltIns returns a store holding the built-in presets followed by the
// user presets of ps. User presets shadowing a built-in name are skipped.
func (ps PresetStore) WithBuiltIns() PresetStore {
	merged := PresetStore{Presets: BuiltInPresets()}
	for _, p := range ps.Presets {
		if merged.FindByName(p.Name) != nil {
			continue
		}
		merged.Add(p)
	}
	return merged
}
