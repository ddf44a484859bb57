package model

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Area is the derived polygon/polyline geometry built from either a closed
// Way or a multipolygon Relation. FromLine marks geometry that started as
// an open line and still needs buffering into a polygon downstream.
type Area struct {
	ID       int64
	Tags     TagMap
	Geometry orb.Geometry // orb.Polygon, orb.MultiPolygon, or orb.LineString
	FromLine bool
	SourceID int64      // the originating Way or Relation id
	Source   ObjectKind // KindWay or KindRelation
	Diagnostics
}

// NewAreaFromWay builds an Area from a single Way. A closed way becomes a
// one-ring polygon; an open way becomes a polyline flagged FromLine.
func NewAreaFromWay(w *Way) *Area {
	a := &Area{
		ID:       w.ID,
		Tags:     w.Tags,
		SourceID: w.ID,
		Source:   KindWay,
	}
	if w.Closed() {
		ring := make(orb.Ring, len(w.NodeRefs))
		copy(ring, w.NodeRefs)
		a.Geometry = orb.Polygon{ring}
	} else {
		a.Geometry = w.LineString()
		a.FromLine = true
	}
	a.Diagnostics.Merge(&w.Diagnostics)
	return a
}

// NewAreaFromRelation builds an Area from a multipolygon Relation, using
// the outer-role member ways as rings. If no member carries the "outer"
// role, every way member is used instead and the area is flagged invalid
// via a warning. ErrInvalidAreaSource is returned only for a relation that
// is not tagged type=multipolygon.
func NewAreaFromRelation(rel *Relation, ways map[int64]*Way) (*Area, error) {
	if !rel.Tags.HasTag("type", "multipolygon") {
		return nil, &ErrInvalidAreaSource{RelationID: rel.ID, Reason: "relation is not a multipolygon"}
	}

	a := &Area{
		ID:       rel.ID,
		Tags:     rel.Tags,
		SourceID: rel.ID,
		Source:   KindRelation,
	}

	var outerRings []orb.Ring
	hasOuter := false
	for _, m := range rel.Members {
		if m.Kind == KindWay && m.Role == "outer" {
			hasOuter = true
			if w, ok := ways[m.ID]; ok && w.Closed() {
				ring := make(orb.Ring, len(w.NodeRefs))
				copy(ring, w.NodeRefs)
				outerRings = append(outerRings, ring)
			}
		}
	}

	if !hasOuter {
		a.Warn("multipolygon relation has no outer-role member; using all way members")
		for _, m := range rel.Members {
			if m.Kind != KindWay {
				continue
			}
			if w, ok := ways[m.ID]; ok && w.Closed() {
				ring := make(orb.Ring, len(w.NodeRefs))
				copy(ring, w.NodeRefs)
				outerRings = append(outerRings, ring)
			}
		}
	}

	poly := make(orb.Polygon, 0, len(outerRings))
	poly = append(poly, outerRings...)
	a.Geometry = poly
	a.Diagnostics.Merge(&rel.Diagnostics)
	return a, nil
}

// Centroid returns the mean of the area's outer-ring vertices (of the first
// polygon, for a multipolygon; a closed ring's repeated end vertex counts
// once), or of a polyline's vertices, for point-anchored use cases (virtual
// pole synthesis, export popup anchors). It is not an area-weighted
// centroid.
func (a *Area) Centroid() orb.Point {
	switch g := a.Geometry.(type) {
	case orb.Polygon:
		return polygonCentroid(g)
	case orb.MultiPolygon:
		if len(g) == 0 {
			return orb.Point{}
		}
		return polygonCentroid(g[0])
	case orb.LineString:
		return lineStringCentroid(g)
	default:
		return orb.Point{}
	}
}

// PlanarArea returns the unsigned planar area of the geometry in the
// units of its current projection (used for §4.5's descending-area plafo
// ordering, so callers must project to a metric CRS first).
func (a *Area) PlanarArea() float64 {
	switch g := a.Geometry.(type) {
	case orb.Polygon:
		return math.Abs(planar.Area(g))
	case orb.MultiPolygon:
		var total float64
		for _, p := range g {
			total += math.Abs(planar.Area(p))
		}
		return total
	default:
		return 0
	}
}

func polygonCentroid(p orb.Polygon) orb.Point {
	if len(p) == 0 || len(p[0]) == 0 {
		return orb.Point{}
	}
	ring := p[0]
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return lineStringCentroid(orb.LineString(ring))
}

func lineStringCentroid(ls orb.LineString) orb.Point {
	if len(ls) == 0 {
		return orb.Point{}
	}
	var sx, sy float64
	for _, pt := range ls {
		sx += pt[0]
		sy += pt[1]
	}
	n := float64(len(ls))
	return orb.Point{sx / n, sy / n}
}
