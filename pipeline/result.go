package pipeline

import (
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/ptstop/model"
	"github.com/theoremus-urban-solutions/ptstop/overpass"
)

// Result is the outcome of running the pipeline for one region.
type Result struct {
	RegionCode string

	Stops   []*model.Stop
	Dubious []*model.DubiousObject

	ProcessingTime time.Duration
	CacheStats     overpass.Stats

	// Err is non-nil if the region aborted; Stops/Dubious are empty in
	// that case.
	Err error
}

// Succeeded reports whether the region completed without aborting.
func (r *Result) Succeeded() bool { return r.Err == nil }

// Summary returns aggregate statistics over the region's finished stops.
func (r *Result) Summary() Statistics {
	return Summarize(r.Stops)
}

// String returns a short human-readable rendering of the result.
func (r *Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("region %s failed: %v", r.RegionCode, r.Err)
	}
	return fmt.Sprintf("region %s: %d stops, %d dubious objects (%s)",
		r.RegionCode, len(r.Stops), len(r.Dubious), r.ProcessingTime)
}
