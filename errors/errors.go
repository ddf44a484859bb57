// Package errors defines the pipeline's distinct error kinds and a
// context-attaching builder for errors that need to be reported to an
// operator rather than merely logged.
package errors

import (
	"fmt"
	"strings"
)

// ExportIOFailure wraps a write failure from the export adapter; it
// always bubbles to the region driver and fails that region's run.
type ExportIOFailure struct {
	Layer string
	Err   error
}

func (e *ExportIOFailure) Error() string {
	return fmt.Sprintf("export: writing %s: %v", e.Layer, e.Err)
}

func (e *ExportIOFailure) Unwrap() error { return e.Err }

// RegionError attaches region code and pipeline phase context to the
// error that aborted a region's run, for logging and for the manifest
// driver's per-region failure accounting.
type RegionError struct {
	RegionCode string
	Phase      string
	Details    string
	Context    map[string]interface{}
	Cause      error
}

// NewRegionError creates a RegionError wrapping cause with the region
// and phase it occurred in.
func NewRegionError(regionCode, phase string, cause error) *RegionError {
	return &RegionError{
		RegionCode: regionCode,
		Phase:      phase,
		Context:    make(map[string]interface{}),
		Cause:      cause,
	}
}

// WithDetails adds a human-readable detail string.
func (e *RegionError) WithDetails(details string) *RegionError {
	e.Details = details
	return e
}

// WithContext attaches a key/value pair of diagnostic context.
func (e *RegionError) WithContext(key string, value interface{}) *RegionError {
	e.Context[key] = value
	return e
}

// Error implements the error interface.
func (e *RegionError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("region %s", e.RegionCode))
	if e.Phase != "" {
		parts = append(parts, fmt.Sprintf("phase %s", e.Phase))
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	if e.Details != "" {
		parts = append(parts, e.Details)
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes the triggering error for errors.Is/errors.As.
func (e *RegionError) Unwrap() error { return e.Cause }

// GetFormattedMessage returns a multi-line, operator-facing rendering
// of the error, including any attached context.
func (e *RegionError) GetFormattedMessage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "region %s failed during %s\n", e.RegionCode, e.Phase)
	if e.Cause != nil {
		fmt.Fprintf(&b, "cause: %s\n", e.Cause.Error())
	}
	if e.Details != "" {
		fmt.Fprintf(&b, "details: %s\n", e.Details)
	}
	if len(e.Context) > 0 {
		b.WriteString("context:\n")
		for k, v := range e.Context {
			fmt.Fprintf(&b, "  %s: %v\n", k, v)
		}
	}
	return b.String()
}

// Formatter renders a batch of region failures for end-of-run reporting.
type Formatter struct{}

// NewFormatter creates a new Formatter.
func NewFormatter() *Formatter { return &Formatter{} }

// FormatAsList formats multiple region errors as a numbered list.
func (f *Formatter) FormatAsList(errs []*RegionError) string {
	if len(errs) == 0 {
		return "no region failures"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d region(s) failed:\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, e.Error())
	}
	return b.String()
}
