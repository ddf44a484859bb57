package pipeline

import (
	"time"

	"github.com/theoremus-urban-solutions/ptstop/config"
	"github.com/theoremus-urban-solutions/ptstop/logging"
	"github.com/theoremus-urban-solutions/ptstop/overpass"
)

// Options configures a single region run. Use DefaultOptions() (or
// FromConfig()) to get a base configuration, then chain With* methods:
//
//	opts := pipeline.FromConfig(cfg).WithLogger(myLogger)
type Options struct {
	// Overpass carries the query-service connection settings.
	Overpass *overpass.ClientOptions

	// ObjectsQuery/TracksQuery are the Overpass QL templates for the
	// primary and track-fetch queries. Defaults to the built-in queries
	// unless overridden.
	ObjectsQuery string
	TracksQuery  string

	// Match radii and buffer sizes, in the region's metric CRS units.
	HalfPlafoWidth float64
	StationRadius  float64
	PoleStopoDist  float64
	PlafoStopoDist float64
	PlafoPoleDist  float64
	StopBufferSize float64

	// ExportPath/PlolesPath are where the export adapter writes.
	ExportPath string
	PlolesPath string

	// Logger, if nil, is created from Debug.
	Logger *logging.Logger
	Debug  bool
}

// DefaultOptions returns an Options populated with config.DefaultConfig()'s
// values and a freshly built overpass client configuration.
func DefaultOptions() *Options {
	cfg := config.DefaultConfig()
	return FromConfig(cfg)
}

// FromConfig builds Options from a loaded PipelineConfig.
func FromConfig(cfg *config.PipelineConfig) *Options {
	return &Options{
		Overpass: &overpass.ClientOptions{
			URL:        cfg.OverpassURL,
			APIKey:     cfg.OverpassKey,
			Timeout:    time.Duration(cfg.OverpassTimeout) * time.Second,
			MaxRetries: 3,
			CacheSize:  cfg.QueryCacheSize,
		},
		ObjectsQuery:   overpass.ObjectsQuery,
		TracksQuery:    overpass.TracksQuery,
		HalfPlafoWidth: cfg.HalfPlafoWidth,
		StationRadius:  cfg.StationRadius,
		PoleStopoDist:  cfg.PoleStopoDist,
		PlafoStopoDist: cfg.PlafoStopoDist,
		PlafoPoleDist:  cfg.PlafoPoleDist,
		StopBufferSize: cfg.StopBufferSize,
		ExportPath:     cfg.ExportPath,
		PlolesPath:     cfg.PlolesPath,
		Debug:          cfg.Debug,
	}
}

// WithLogger injects a custom logger and returns the options for chaining.
func (o *Options) WithLogger(logger *logging.Logger) *Options {
	o.Logger = logger
	return o
}

// WithDebug toggles debug-level logging and returns the options for chaining.
func (o *Options) WithDebug(debug bool) *Options {
	o.Debug = debug
	return o
}

// WithObjectsQuery overrides the primary query template.
func (o *Options) WithObjectsQuery(query string) *Options {
	o.ObjectsQuery = query
	return o
}

// WithTracksQuery overrides the track-fetch query template.
func (o *Options) WithTracksQuery(query string) *Options {
	o.TracksQuery = query
	return o
}

// GetLogger returns o.Logger if set, otherwise builds one from o.Debug.
func (o *Options) GetLogger() *logging.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	level := logging.LevelInfo
	if o.Debug {
		level = logging.LevelDebug
	}
	return logging.NewLogger(logging.LoggerConfig{Level: level, Format: "text", Component: "ptstop"})
}
