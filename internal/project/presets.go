package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/scalebutton/internal/model"
)

// DefaultConfigDir returns the default directory for application files.
// On all platforms this is ~/.scalebutton/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".scalebutton")
}

// DefaultPresetsPath returns the default file path for user style presets.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the preset store to a JSON file. Built-in presets are
// never written; they ship with the binary.
func SavePresets(path string, store model.PresetStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	user := model.NewPresetStore()
	for _, p := range store.Presets {
		if !p.IsBuiltIn {
			user.Add(p)
		}
	}

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads a preset store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}

	var raw struct {
		Presets []json.RawMessage `json:"presets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.PresetStore{}, fmt.Errorf("parse presets %s: %w", path, err)
	}

	store := model.NewPresetStore()
	for i, msg := range raw.Presets {
		p, err := decodePreset(msg)
		if err != nil {
			return model.PresetStore{}, fmt.Errorf("preset %d in %s: %w", i, path, err)
		}
		store.Add(p)
	}
	return store, nil
}

// ExportPreset exports a single preset to a JSON file (for sharing).
func ExportPreset(path string, preset model.StylePreset) error {
	preset.IsBuiltIn = false
	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportPreset imports a single preset from a JSON file.
func ImportPreset(path string) (model.StylePreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.StylePreset{}, err
	}
	return decodePreset(data)
}

// decodePreset unmarshals over the default style so that fields missing from
// older files keep their defaults.
func decodePreset(data []byte) (model.StylePreset, error) {
	preset := model.StylePreset{Style: model.DefaultButtonStyle()}
	if err := json.Unmarshal(data, &preset); err != nil {
		return model.StylePreset{}, err
	}
	if preset.Name == "" {
		return model.StylePreset{}, errors.New("preset has no name")
	}
	if preset.ID == "" {
		preset.ID = model.NewStylePreset(preset.Name, "", preset.Style).ID
	}
	preset.IsBuiltIn = false
	preset.Style = preset.Style.Normalized()
	return preset, nil
}
