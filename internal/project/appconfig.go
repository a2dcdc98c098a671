// Package project keeps application settings, the local gallery, sheet
// presets and a local pattern library as JSON files under ~/.furnicraft.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/FurniCraft/internal/model"
)

// MaxRecentConfigurations caps the recently opened list.
const MaxRecentConfigurations = 10

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.furnicraft/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".furnicraft")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Fields missing from the file keep their defaults.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return model.AppConfig{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	if config.RecentConfigurations == nil {
		config.RecentConfigurations = []string{}
	}
	return config, nil
}

// AddRecentConfiguration moves id to the front of the recent list.
func AddRecentConfiguration(config *model.AppConfig, id string) {
	recent := []string{id}
	for _, r := range config.RecentConfigurations {
		if r != id && len(recent) < MaxRecentConfigurations {
			recent = append(recent, r)
		}
	}
	config.RecentConfigurations = recent
}

// writeJSON writes v as indented JSON, creating parent directories.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
