package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging for the stop reconstruction pipeline.
type Logger struct {
	*slog.Logger
	level slog.Level
}

// LogLevel represents different logging levels.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoggerConfig holds configuration for logger creation.
type LoggerConfig struct {
	Level         LogLevel
	Format        string // "json" or "text"
	Output        io.Writer
	IncludeSource bool
	Component     string
}

// NewLogger creates a new structured logger with the given configuration.
func NewLogger(config LoggerConfig) *Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Format == "" {
		config.Format = "text"
	}
	if config.Component == "" {
		config.Component = "ptstop"
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.IncludeSource,
	}

	var handler slog.Handler
	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}

	logger := slog.New(handler).With("component", config.Component)
	return &Logger{Logger: logger, level: config.Level.ToSlogLevel()}
}

// NewDefaultLogger creates a logger with sensible defaults.
func NewDefaultLogger() *Logger {
	return NewLogger(LoggerConfig{Level: LevelInfo, Format: "text", Component: "ptstop"})
}

// WithRegion returns a logger scoped to one region's processing.
func (l *Logger) WithRegion(regionCode string) *Logger {
	return &Logger{l.With("region", regionCode), l.level}
}

// WithPhase returns a logger scoped to one pipeline phase within a region.
func (l *Logger) WithPhase(phase string) *Logger {
	return &Logger{l.With("phase", phase), l.level}
}

// WithError returns a logger with error context attached.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{l.With("error", err.Error()), l.level}
}

// WithDuration returns a logger with an operation/duration pair attached.
func (l *Logger) WithDuration(operation string, duration time.Duration) *Logger {
	return &Logger{l.With("operation", operation, "duration_ms", duration.Milliseconds()), l.level}
}

// RegionStart logs the start of a region's pipeline run.
func (l *Logger) RegionStart(regionCode string) {
	l.Info("starting region", "region", regionCode, "timestamp", time.Now().Format(time.RFC3339))
}

// RegionComplete logs the completion of a region's pipeline run.
func (l *Logger) RegionComplete(regionCode string, duration time.Duration, stopCount int) {
	l.Info("region complete",
		"region", regionCode,
		"duration_ms", duration.Milliseconds(),
		"stops", stopCount,
	)
}

// RegionFailed logs a region's processing failure; the manifest driver
// moves on to the next region afterwards.
func (l *Logger) RegionFailed(regionCode string, err error) {
	l.Error("region failed", "region", regionCode, "error", err.Error())
}

// PhaseComplete logs one pipeline phase's completion within a region.
func (l *Logger) PhaseComplete(regionCode, phase string, duration time.Duration) {
	l.Debug("phase complete", "region", regionCode, "phase", phase, "duration_ms", duration.Milliseconds())
}

// QueryCacheStats logs the overpass response cache's hit/miss counters.
func (l *Logger) QueryCacheStats(regionCode string, hits, misses int64) {
	l.Debug("query cache stats", "region", regionCode, "hits", hits, "misses", misses)
}

// IsLevelEnabled checks if a log level is enabled.
func (l *Logger) IsLevelEnabled(level LogLevel) bool {
	return l.level <= level.ToSlogLevel()
}

var defaultLogger = NewDefaultLogger()

// SetDefaultLogger sets the global default logger.
func SetDefaultLogger(logger *Logger) { defaultLogger = logger }

// GetDefaultLogger returns the global default logger.
func GetDefaultLogger() *Logger { return defaultLogger }

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
