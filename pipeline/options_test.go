package pipeline

import (
	"testing"

	"github.com/theoremus-urban-solutions/ptstop/config"
)

func TestFromConfig_CarriesDistancesAndPaths(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PlafoPoleDist = 42

	opts := FromConfig(cfg)

	if opts.PlafoPoleDist != 42 {
		t.Errorf("expected PlafoPoleDist carried from config, got %v", opts.PlafoPoleDist)
	}
	if opts.Overpass.URL != cfg.OverpassURL {
		t.Errorf("expected overpass URL carried from config, got %v", opts.Overpass.URL)
	}
	if opts.ExportPath != cfg.ExportPath {
		t.Errorf("expected export path carried from config, got %v", opts.ExportPath)
	}
}

func TestWithDebug_TogglesLoggerLevel(t *testing.T) {
	opts := DefaultOptions().WithDebug(true)
	if !opts.Debug {
		t.Errorf("expected WithDebug(true) to set Debug")
	}
	log := opts.GetLogger()
	if log == nil {
		t.Fatalf("expected a non-nil logger")
	}
}

func TestWithLogger_OverridesGetLogger(t *testing.T) {
	custom := DefaultOptions().GetLogger()
	opts := DefaultOptions().WithLogger(custom)
	if opts.GetLogger() != custom {
		t.Errorf("expected GetLogger to return the injected logger")
	}
}
