package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  port: ":9090"
vectorize:
  parallel: 8
defaults:
  mode: multicolor
  color_layers: 6
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != ":9090" {
		t.Errorf("Expected port :9090, got %s", cfg.Server.Port)
	}
	if cfg.Vectorize.Parallel != 8 {
		t.Errorf("Expected parallel 8, got %d", cfg.Vectorize.Parallel)
	}
	if cfg.Vectorize.MaxDimension != 4000 {
		t.Errorf("Expected default max dimension 4000, got %d", cfg.Vectorize.MaxDimension)
	}
	if cfg.Redis.TTL != 24*time.Hour {
		t.Errorf("Expected default ttl 24h, got %v", cfg.Redis.TTL)
	}
	if cfg.Defaults.Mode != "multicolor" || cfg.Defaults.ColorLayers != 6 {
		t.Errorf("Expected multicolor/6, got %s/%d", cfg.Defaults.Mode, cfg.Defaults.ColorLayers)
	}
	if cfg.Defaults.Threshold != 128 {
		t.Errorf("Expected default threshold 128, got %d", cfg.Defaults.Threshold)
	}
	if _, err := cfg.Defaults.Settings(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if _, err := cfg.Defaults.Settings(); err != nil {
		t.Errorf("Default options should validate: %v", err)
	}
}
