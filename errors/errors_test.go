package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestRegionError_Error(t *testing.T) {
	cause := errors.New("query timed out")
	err := NewRegionError("NO_OSLO", "ingest", cause).WithDetails("overpass unreachable")

	msg := err.Error()
	if !strings.Contains(msg, "NO_OSLO") {
		t.Errorf("expected region code in error string, got: %s", msg)
	}
	if !strings.Contains(msg, "ingest") {
		t.Errorf("expected phase in error string, got: %s", msg)
	}
	if !strings.Contains(msg, "query timed out") {
		t.Errorf("expected cause in error string, got: %s", msg)
	}
	if !strings.Contains(msg, "overpass unreachable") {
		t.Errorf("expected details in error string, got: %s", msg)
	}
}

func TestRegionError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewRegionError("NO_OSLO", "match", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestRegionError_WithContext(t *testing.T) {
	err := NewRegionError("NO_OSLO", "assemble", errors.New("x")).
		WithContext("stop_count", 12)

	formatted := err.GetFormattedMessage()
	if !strings.Contains(formatted, "stop_count") {
		t.Errorf("expected context key in formatted message, got: %s", formatted)
	}
}

func TestExportIOFailure(t *testing.T) {
	cause := errors.New("disk full")
	err := &ExportIOFailure{Layer: "stops", Err: cause}

	if !strings.Contains(err.Error(), "stops") {
		t.Errorf("expected layer name in error string, got: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestFormatter_FormatAsList(t *testing.T) {
	f := NewFormatter()

	if got := f.FormatAsList(nil); got != "no region failures" {
		t.Errorf("expected empty-list message, got: %s", got)
	}

	errs := []*RegionError{
		NewRegionError("NO_OSLO", "ingest", errors.New("a")),
		NewRegionError("NO_BERGEN", "match", errors.New("b")),
	}
	out := f.FormatAsList(errs)
	if !strings.Contains(out, "2 region(s) failed") {
		t.Errorf("expected failure count, got: %s", out)
	}
	if !strings.Contains(out, "NO_OSLO") || !strings.Contains(out, "NO_BERGEN") {
		t.Errorf("expected both region codes, got: %s", out)
	}
}
