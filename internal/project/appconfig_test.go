package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/FurniCraft/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerfWidth = 3.2
	cfg.MaterialCode = "W980_9"
	cfg.PricingStrategy = "multiplyTotal"
	cfg.RecentConfigurations = []string{"a1b2c3d4", "e5f6a7b8"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultKerfWidth != 3.2 {
		t.Errorf("expected DefaultKerfWidth=3.2, got %f", loaded.DefaultKerfWidth)
	}
	if loaded.MaterialCode != "W980_9" {
		t.Errorf("expected MaterialCode=W980_9, got %s", loaded.MaterialCode)
	}
	if loaded.PricingStrategy != "multiplyTotal" {
		t.Errorf("expected PricingStrategy=multiplyTotal, got %s", loaded.PricingStrategy)
	}
	if len(loaded.RecentConfigurations) != 2 {
		t.Errorf("expected 2 recent configurations, got %d", len(loaded.RecentConfigurations))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultKerfWidth != defaults.DefaultKerfWidth {
		t.Errorf("expected default kerf width %f, got %f", defaults.DefaultKerfWidth, cfg.DefaultKerfWidth)
	}
	if cfg.Thickness.CutListBoardMM != 16 {
		t.Errorf("expected cut list board thickness 16, got %f", cfg.Thickness.CutListBoardMM)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"listen_addr": ":9090"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("expected listen addr :9090, got %s", cfg.ListenAddr)
	}
	if cfg.MaterialCode != "U780_9" {
		t.Errorf("expected default material code, got %s", cfg.MaterialCode)
	}
	if cfg.RecentConfigurations == nil {
		t.Error("RecentConfigurations should not be nil")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("expected config file to exist after save")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected filename config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".furnicraft" {
		t.Errorf("expected parent dir .furnicraft, got %s", filepath.Dir(path))
	}
}

func TestAddRecentConfiguration(t *testing.T) {
	cfg := model.DefaultAppConfig()
	for i := 0; i < MaxRecentConfigurations+3; i++ {
		AddRecentConfiguration(&cfg, string(rune('a'+i)))
	}
	if len(cfg.RecentConfigurations) != MaxRecentConfigurations {
		t.Fatalf("expected %d recent entries, got %d", MaxRecentConfigurations, len(cfg.RecentConfigurations))
	}

	AddRecentConfiguration(&cfg, "f")
	if cfg.RecentConfigurations[0] != "f" {
		t.Errorf("expected f first, got %s", cfg.RecentConfigurations[0])
	}
	count := 0
	for _, r := range cfg.RecentConfigurations {
		if r == "f" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected f once, got %d times", count)
	}
}
