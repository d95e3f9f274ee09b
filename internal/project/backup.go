package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/scalebutton/internal/model"
)

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Presets   []model.StylePreset `json:"presets"`
}

// ExportAllData exports the app config and user presets to a single JSON
// file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, store model.PresetStore) error {
	backup := BackupData{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Presets:   []model.StylePreset{},
	}
	for _, p := range store.Presets {
		if !p.IsBuiltIn {
			backup.Presets = append(backup.Presets, p)
		}
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Presets == nil {
		backup.Presets = []model.StylePreset{}
	}
	for i := range backup.Presets {
		backup.Presets[i].IsBuiltIn = false
		backup.Presets[i].Style = backup.Presets[i].Style.Normalized()
	}
	return backup, nil
}

// Store returns the backed-up presets as a PresetStore.
func (b BackupData) Store() model.PresetStore {
	store := model.NewPresetStore()
	for _, p := range b.Presets {
		store.Add(p)
	}
	return store
}
