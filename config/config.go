// Package config loads and validates the pipeline's YAML configuration,
// the §6 key list (query-service endpoint, buffer/match distances,
// filesystem paths, and region filtering).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RegionsMode selects whether regions_codes includes or excludes regions
// from a manifest run.
type RegionsMode string

const (
	RegionsModeInclude RegionsMode = "include"
	RegionsModeExclude RegionsMode = "exclude"
)

// PipelineConfig is the complete runtime configuration for one invocation
// of the stop reconstruction pipeline.
type PipelineConfig struct {
	OverpassURL     string `yaml:"overpass_url"`
	OverpassKey     string `yaml:"overpass_key"`
	OverpassTimeout int    `yaml:"overpass_timeout"`

	LonLatCRS string `yaml:"lon_lat_crs"`
	WebCRS    string `yaml:"web_crs"`

	HalfPlafoWidth float64 `yaml:"half_plafo_width"`
	StationRadius  float64 `yaml:"station_radius"`
	PoleStopoDist  float64 `yaml:"pole_stopo_dist"`
	PlafoStopoDist float64 `yaml:"plafo_stopo_dist"`
	PlafoPoleDist  float64 `yaml:"plafo_pole_dist"`
	StopBufferSize float64 `yaml:"stop_buffer_size"`

	RegionsPath  string `yaml:"regions_path"`
	ExportPath   string `yaml:"export_path"`
	TilesPath    string `yaml:"tiles_path"`
	TilesTmpPath string `yaml:"tiles_tmp_path"`
	LogsPath     string `yaml:"logs_path"`
	PlolesPath   string `yaml:"ploles_path"`

	RegionsMode  RegionsMode `yaml:"regions_mode"`
	RegionsCodes []string    `yaml:"regions_codes"`

	Debug          bool `yaml:"debug"`
	QueryCacheSize int  `yaml:"query_cache_size"`
	RegionWorkers  int  `yaml:"region_workers"`
}

// DefaultConfig returns a configuration with the defaults named in §6.
func DefaultConfig() *PipelineConfig {
	return &PipelineConfig{
		OverpassURL:     "https://overpass-api.de/api/interpreter",
		OverpassTimeout: 180,

		LonLatCRS: "EPSG:4326",
		WebCRS:    "EPSG:3857",

		HalfPlafoWidth: 4,
		StationRadius:  50,
		PoleStopoDist:  30,
		PlafoStopoDist: 30,
		PlafoPoleDist:  30,
		StopBufferSize: 15,

		RegionsPath:  "regions.csv",
		ExportPath:   "export",
		TilesPath:    "tiles",
		TilesTmpPath: "tiles_tmp",
		LogsPath:     "logs",
		PlolesPath:   "export/ploles",

		RegionsMode:    RegionsModeExclude,
		RegionsCodes:   nil,
		Debug:          false,
		QueryCacheSize: 256,
		RegionWorkers:  4,
	}
}

// LoadConfig loads configuration from a YAML file, falling back to
// DefaultConfig when path is empty.
func LoadConfig(path string) (*PipelineConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}
	if !filepath.IsAbs(path) && strings.Contains(path, "..") {
		return nil, fmt.Errorf("invalid config file path: %s", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path validated above
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration to path as YAML, creating parent
// directories as needed.
func (c *PipelineConfig) SaveConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

// Validate checks the configuration for internally inconsistent values.
func (c *PipelineConfig) Validate() error {
	if c.OverpassURL == "" {
		return fmt.Errorf("overpass_url must not be empty")
	}
	if c.OverpassTimeout <= 0 {
		return fmt.Errorf("overpass_timeout must be positive")
	}
	for name, v := range map[string]float64{
		"half_plafo_width": c.HalfPlafoWidth,
		"station_radius":   c.StationRadius,
		"pole_stopo_dist":  c.PoleStopoDist,
		"plafo_stopo_dist": c.PlafoStopoDist,
		"plafo_pole_dist":  c.PlafoPoleDist,
		"stop_buffer_size": c.StopBufferSize,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.RegionsMode != RegionsModeInclude && c.RegionsMode != RegionsModeExclude {
		return fmt.Errorf("regions_mode must be %q or %q", RegionsModeInclude, RegionsModeExclude)
	}
	if c.RegionsPath == "" {
		return fmt.Errorf("regions_path must not be empty")
	}
	if c.RegionWorkers <= 0 {
		return fmt.Errorf("region_workers must be positive")
	}
	if c.QueryCacheSize < 0 {
		return fmt.Errorf("query_cache_size must not be negative")
	}
	return nil
}

// IncludesRegion reports whether a region code should be processed under
// the configured regions_mode/regions_codes filter.
func (c *PipelineConfig) IncludesRegion(code string) bool {
	listed := false
	for _, rc := range c.RegionsCodes {
		if rc == code {
			listed = true
			break
		}
	}
	if c.RegionsMode == RegionsModeInclude {
		return listed
	}
	return !listed
}

// GenerateDefaultConfigFile writes a default configuration file to path.
func GenerateDefaultConfigFile(path string) error {
	return DefaultConfig().SaveConfig(path)
}
