package config

import (
	"path/filepath"
	"testing"
)

func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OverpassURL != DefaultConfig().OverpassURL {
		t.Errorf("expected default overpass url, got %q", cfg.OverpassURL)
	}
}

func TestLoadConfig_MissingFileErrors(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/path/config.yaml"); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestSaveAndLoadConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")

	cfg := DefaultConfig()
	cfg.OverpassURL = "https://example.org/interpreter"
	cfg.RegionWorkers = 8

	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if loaded.OverpassURL != cfg.OverpassURL || loaded.RegionWorkers != cfg.RegionWorkers {
		t.Errorf("expected round-tripped config to match, got %+v", loaded)
	}
}

func TestValidate_RejectsNonPositiveDistances(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlafoPoleDist = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected validation error for zero plafo_pole_dist")
	}
}

func TestValidate_RejectsBadRegionsMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RegionsMode = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected validation error for invalid regions_mode")
	}
}

func TestIncludesRegion_IncludeMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RegionsMode = RegionsModeInclude
	cfg.RegionsCodes = []string{"OSLO"}

	if !cfg.IncludesRegion("OSLO") {
		t.Errorf("expected OSLO included")
	}
	if cfg.IncludesRegion("BERGEN") {
		t.Errorf("expected BERGEN excluded under include mode")
	}
}

func TestIncludesRegion_ExcludeMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RegionsMode = RegionsModeExclude
	cfg.RegionsCodes = []string{"OSLO"}

	if cfg.IncludesRegion("OSLO") {
		t.Errorf("expected OSLO excluded")
	}
	if !cfg.IncludesRegion("BERGEN") {
		t.Errorf("expected BERGEN included under exclude mode")
	}
}
