package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:     LevelInfo,
		Format:    "json",
		Output:    &buf,
		Component: "test-component",
	})
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "test-component") {
		t.Errorf("expected log output to contain component name, got: %s", output)
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, want %s", test.level, got, test.expected)
		}
	}
}

func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()
	if logger == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
	logger.Info("test message")
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf})

	logger.Info("test json message", "key", "value")

	var jsonData map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &jsonData); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if jsonData["msg"] != "test json message" {
		t.Errorf("expected message 'test json message', got: %v", jsonData["msg"])
	}
	if jsonData["key"] != "value" {
		t.Errorf("expected key 'value', got: %v", jsonData["key"])
	}
}

func TestLogger_WithRegionAndPhase(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf})

	regionLogger := logger.WithRegion("NO_OSLO")
	regionLogger.Info("region test")
	if !strings.Contains(buf.String(), "NO_OSLO") {
		t.Errorf("expected region code in output, got: %s", buf.String())
	}
	buf.Reset()

	phaseLogger := logger.WithPhase("spatial-match")
	phaseLogger.Info("phase test")
	if !strings.Contains(buf.String(), "spatial-match") {
		t.Errorf("expected phase name in output, got: %s", buf.String())
	}
	buf.Reset()

	errLogger := logger.WithError(errors.New("boom"))
	errLogger.Info("error test")
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected error message in output, got: %s", buf.String())
	}
	buf.Reset()

	durLogger := logger.WithDuration("assemble", 150*time.Millisecond)
	durLogger.Info("duration test")
	if !strings.Contains(buf.String(), "150") {
		t.Errorf("expected duration in output, got: %s", buf.String())
	}
}

func TestLogger_RegionLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	logger.RegionStart("NO_OSLO")
	if !strings.Contains(buf.String(), "starting region") {
		t.Errorf("expected region start message, got: %s", buf.String())
	}
	buf.Reset()

	logger.RegionComplete("NO_OSLO", 2*time.Second, 42)
	if !strings.Contains(buf.String(), "region complete") || !strings.Contains(buf.String(), "42") {
		t.Errorf("expected region complete message with stop count, got: %s", buf.String())
	}
	buf.Reset()

	logger.RegionFailed("NO_OSLO", errors.New("query timeout"))
	if !strings.Contains(buf.String(), "region failed") || !strings.Contains(buf.String(), "query timeout") {
		t.Errorf("expected region failed message, got: %s", buf.String())
	}
	buf.Reset()

	logger.PhaseComplete("NO_OSLO", "classify", 10*time.Millisecond)
	if !strings.Contains(buf.String(), "phase complete") {
		t.Errorf("expected phase complete message, got: %s", buf.String())
	}
	buf.Reset()

	logger.QueryCacheStats("NO_OSLO", 5, 2)
	if !strings.Contains(buf.String(), "query cache stats") {
		t.Errorf("expected query cache stats message, got: %s", buf.String())
	}
}

func TestLogger_IsLevelEnabled(t *testing.T) {
	logger := NewLogger(LoggerConfig{Level: LevelWarn})

	if !logger.IsLevelEnabled(LevelError) {
		t.Error("expected ERROR level to be enabled for WARN logger")
	}
	if !logger.IsLevelEnabled(LevelWarn) {
		t.Error("expected WARN level to be enabled for WARN logger")
	}
	if logger.IsLevelEnabled(LevelInfo) {
		t.Error("expected INFO level to be disabled for WARN logger")
	}
	if logger.IsLevelEnabled(LevelDebug) {
		t.Error("expected DEBUG level to be disabled for WARN logger")
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := defaultLogger
	defer func() { defaultLogger = originalLogger }()

	testLogger := NewLogger(LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf})
	SetDefaultLogger(testLogger)

	if GetDefaultLogger() != testLogger {
		t.Error("GetDefaultLogger did not return the expected logger")
	}

	Info("test info", "key", "value")
	if !strings.Contains(buf.String(), "test info") {
		t.Errorf("expected global Info to work, got: %s", buf.String())
	}
	buf.Reset()

	Warn("test warning")
	if !strings.Contains(buf.String(), "test warning") {
		t.Errorf("expected global Warn to work, got: %s", buf.String())
	}
	buf.Reset()

	Error("test error")
	if !strings.Contains(buf.String(), "test error") {
		t.Errorf("expected global Error to work, got: %s", buf.String())
	}
}
