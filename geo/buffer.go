package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// circleSegments controls the polygon approximation used for round-cap
// buffering; orb carries no buffering op of its own (it is a geometry
// types + encoding library, not a planar-algebra one), and no library in
// this codebase's dependency pool provides buffering either, so the
// dilation math below is hand-rolled — see DESIGN.md.
const circleSegments = 16

// circlePoints returns segments points evenly spaced around a circle of
// the given radius centered at c, in the metric plane.
func circlePoints(c orb.Point, radius float64, segments int) []orb.Point {
	pts := make([]orb.Point, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = orb.Point{c[0] + radius*math.Cos(theta), c[1] + radius*math.Sin(theta)}
	}
	return pts
}

// BufferPointRound returns a circular polygon approximation of radius
// around a point, in the metric plane. Used for station_radius buffering
// and for round-cap stop-outline buffering of pole/stopo points.
func BufferPointRound(c orb.Point, radius float64) orb.Polygon {
	pts := circlePoints(c, radius, circleSegments)
	ring := make(orb.Ring, 0, len(pts)+1)
	ring = append(ring, pts...)
	ring = append(ring, pts[0])
	return orb.Polygon{ring}
}

// BufferRound dilates an arbitrary metric-plane geometry by radius using
// round caps: the Minkowski sum of the geometry's vertices with a disk,
// approximated as the convex hull of every vertex's circle samples. This
// is exact for convex inputs (platforms and stop outlines are expected to
// be small, close to convex shapes) and a safe over-approximation
// otherwise.
func BufferRound(g orb.Geometry, radius float64) orb.Polygon {
	var verts []orb.Point
	switch v := g.(type) {
	case orb.Point:
		verts = append(verts, v)
	case orb.LineString:
		verts = append(verts, v...)
	case orb.Ring:
		verts = append(verts, v...)
	case orb.Polygon:
		for _, ring := range v {
			verts = append(verts, ring...)
		}
	case orb.MultiPolygon:
		for _, poly := range v {
			for _, ring := range poly {
				verts = append(verts, ring...)
			}
		}
	}
	if len(verts) == 0 {
		return nil
	}

	dilated := make([]orb.Point, 0, len(verts)*circleSegments)
	for _, v := range verts {
		dilated = append(dilated, circlePoints(v, radius, circleSegments)...)
	}
	return orb.Polygon{ConvexHull(dilated)}
}

// BufferLineFlat buffers a line string by halfWidth with flat (square)
// caps: each segment contributes a rectangle offset perpendicular to its
// direction, and the result is the convex hull of all rectangle corners.
// This matches the "flat (square) caps" requirement for line-sourced
// platforms (§4.5 of the data model) without rounding the line's ends.
func BufferLineFlat(line orb.LineString, halfWidth float64) orb.Polygon {
	if len(line) < 2 {
		if len(line) == 1 {
			return BufferPointRound(line[0], halfWidth)
		}
		return nil
	}

	var corners []orb.Point
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		dx, dy := b[0]-a[0], b[1]-a[1]
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*halfWidth, dx/length*halfWidth
		corners = append(corners,
			orb.Point{a[0] + nx, a[1] + ny},
			orb.Point{a[0] - nx, a[1] - ny},
			orb.Point{b[0] + nx, b[1] + ny},
			orb.Point{b[0] - nx, b[1] - ny},
		)
	}
	if len(corners) == 0 {
		return nil
	}
	return orb.Polygon{ConvexHull(corners)}
}

// UnionApprox approximates the union of two metric-plane polygons as the
// convex hull of the combined vertex set. Exact polygonal boolean union
// is out of scope for the stop-outline visualization this feeds (§4.6);
// the inputs are a buffered platform and a buffered pole/stopo hull,
// which in practice overlap or sit adjacent, so the convex hull is a
// faithful outline for rendering purposes.
func UnionApprox(a, b orb.Polygon) orb.Polygon {
	var verts []orb.Point
	for _, ring := range a {
		verts = append(verts, ring...)
	}
	for _, ring := range b {
		verts = append(verts, ring...)
	}
	if len(verts) == 0 {
		return nil
	}
	return orb.Polygon{ConvexHull(verts)}
}

// NearestPoint returns the point on g closest to target, in the same
// plane as both. Used for virtual pole synthesis (§4.6).
func NearestPoint(g orb.Geometry, target orb.Point) orb.Point {
	switch v := g.(type) {
	case orb.Point:
		return v
	case orb.LineString:
		return nearestOnRing(orb.Ring(v), target)
	case orb.Ring:
		return nearestOnRing(v, target)
	case orb.Polygon:
		if len(v) == 0 {
			return target
		}
		return nearestOnRing(v[0], target)
	default:
		return target
	}
}

func nearestOnRing(ring orb.Ring, target orb.Point) orb.Point {
	if len(ring) == 0 {
		return target
	}
	if len(ring) == 1 {
		return ring[0]
	}
	best := ring[0]
	bestDist := math.MaxFloat64
	n := len(ring) - 1
	for i := 0; i < n; i++ {
		p := nearestOnSegment(ring[i], ring[i+1], target)
		d := math.Hypot(p[0]-target[0], p[1]-target[1])
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

func nearestOnSegment(a, b, p orb.Point) orb.Point {
	dx, dy := b[0]-a[0], b[1]-a[1]
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}
