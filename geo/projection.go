// Package geo provides the region-local metric projection, polygon
// buffering, and the spatial index the matcher (§4.4) queries against.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Projection converts between the geographic CRS (lon/lat degrees, used
// for ingest and export) and a region-local azimuthal-equidistant metric
// CRS (used for buffering and distance queries), centered on Origin.
//
// The forward/inverse formulas are plain spherical trigonometry built on
// orb/geo's distance and bearing helpers rather than a CGo PROJ binding:
// an AEQD projection centered on a fixed origin needs only great-circle
// distance and initial bearing, both of which orb/geo already provides.
type Projection struct {
	Origin orb.Point // lon, lat in degrees
}

// NewProjection builds a Projection centered on origin.
func NewProjection(origin orb.Point) *Projection {
	return &Projection{Origin: origin}
}

// ToMetric projects a geographic point into the region-local metric
// plane: x is the eastward, y the northward offset in meters from Origin.
func (p *Projection) ToMetric(pt orb.Point) orb.Point {
	dist := geo.Distance(p.Origin, pt)
	if dist == 0 {
		return orb.Point{0, 0}
	}
	bearing := geo.Bearing(p.Origin, pt) * math.Pi / 180
	x := dist * math.Sin(bearing)
	y := dist * math.Cos(bearing)
	return orb.Point{x, y}
}

// ToGeographic inverse-projects a metric-plane point back to lon/lat.
func (p *Projection) ToGeographic(pt orb.Point) orb.Point {
	dist := math.Hypot(pt[0], pt[1])
	if dist == 0 {
		return p.Origin
	}
	bearing := math.Atan2(pt[0], pt[1]) * 180 / math.Pi
	return geo.PointAtBearingAndDistance(p.Origin, bearing, dist)
}

// ProjectGeometry applies fn to every vertex of g, returning a geometry of
// the same shape in the target CRS.
func ProjectGeometry(g orb.Geometry, fn func(orb.Point) orb.Point) orb.Geometry {
	switch v := g.(type) {
	case orb.Point:
		return fn(v)
	case orb.LineString:
		out := make(orb.LineString, len(v))
		for i, pt := range v {
			out[i] = fn(pt)
		}
		return out
	case orb.Ring:
		out := make(orb.Ring, len(v))
		for i, pt := range v {
			out[i] = fn(pt)
		}
		return out
	case orb.Polygon:
		out := make(orb.Polygon, len(v))
		for i, ring := range v {
			out[i] = ProjectGeometry(ring, fn).(orb.Ring)
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(v))
		for i, poly := range v {
			out[i] = ProjectGeometry(poly, fn).(orb.Polygon)
		}
		return out
	default:
		return g
	}
}
