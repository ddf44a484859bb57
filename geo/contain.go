package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// PointInPolygon reports whether p lies within poly (or on its boundary),
// using the standard even-odd ray-casting rule against the outer ring.
func PointInPolygon(poly orb.Polygon, p orb.Point) bool {
	if len(poly) == 0 {
		return false
	}
	return pointInRing(poly[0], p)
}

func pointInRing(ring orb.Ring, p orb.Point) bool {
	inside := false
	n := len(ring)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if xi == p[0] && yi == p[1] {
			return true
		}
		intersects := (yi > p[1]) != (yj > p[1])
		if intersects {
			xCross := xi + (p[1]-yi)/(yj-yi)*(xj-xi)
			if p[0] < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// PointDistance returns the Euclidean distance between two metric-plane
// points.
func PointDistance(a, b orb.Point) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// AnchorContains reports whether a point anchored at geom, buffered by
// radius with flat (square) caps, contains target. A Point geometry
// always buffers to a circle regardless of cap style (cap style affects
// only line termination), so point anchors use a plain distance test;
// line and polygon anchors buffer to an explicit polygon first.
func AnchorContains(anchorGeom orb.Geometry, radius float64, target orb.Point) bool {
	switch g := anchorGeom.(type) {
	case orb.Point:
		return PointDistance(g, target) <= radius
	case orb.LineString:
		return PointInPolygon(BufferLineFlat(g, radius), target)
	case orb.Polygon:
		return PointInPolygon(BufferRound(g, radius), target)
	case orb.MultiPolygon:
		return PointInPolygon(BufferRound(g, radius), target)
	default:
		return false
	}
}

// Centroid returns a representative point for any geometry the pipeline
// produces internally (point, line, polygon, multipolygon), using the
// bounding box midpoint for non-point shapes. Good enough for the
// proximity checks annotation needs; not a true area-weighted centroid.
func Centroid(g orb.Geometry) orb.Point {
	if p, ok := g.(orb.Point); ok {
		return p
	}
	b := g.Bound()
	return orb.Point{(b.Min[0] + b.Max[0]) / 2, (b.Min[1] + b.Max[1]) / 2}
}

// GeometryContainsPoint reports whether p lies within geom (point anchors
// use an exact-coincidence test, polygons use PointInPolygon, and a
// MultiPolygon matches if any member polygon contains p).
func GeometryContainsPoint(geom orb.Geometry, p orb.Point) bool {
	switch g := geom.(type) {
	case orb.Point:
		return g == p
	case orb.Polygon:
		return PointInPolygon(g, p)
	case orb.MultiPolygon:
		for _, poly := range g {
			if PointInPolygon(poly, p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// AnchorBound returns the bounding rectangle of the anchor's buffer, used
// for the R-tree broad-phase query.
func AnchorBound(anchorGeom orb.Geometry, radius float64) orb.Bound {
	b := anchorGeom.Bound()
	return orb.Bound{
		Min: orb.Point{b.Min[0] - radius, b.Min[1] - radius},
		Max: orb.Point{b.Max[0] + radius, b.Max[1] + radius},
	}
}
