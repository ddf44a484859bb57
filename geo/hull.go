package geo

import (
	"sort"

	"github.com/paulmach/orb"
)

// ConvexHull computes the convex hull of a point set using Andrew's
// monotone chain algorithm (O(n log n)) and returns it as a closed ring.
// Neither orb nor any library in this codebase's dependency pool ships a
// convex hull routine, so this is a deliberate, well-known-algorithm
// exception to "always reach for a library" — see DESIGN.md.
func ConvexHull(points []orb.Point) orb.Ring {
	pts := uniqueSorted(points)
	if len(pts) < 3 {
		ring := make(orb.Ring, len(pts))
		copy(ring, pts)
		if len(ring) > 0 {
			ring = append(ring, ring[0])
		}
		return ring
	}

	lower := make([]orb.Point, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]orb.Point, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper...)
	return orb.Ring(hull)
}

func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func uniqueSorted(points []orb.Point) []orb.Point {
	pts := make([]orb.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})
	out := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			out = append(out, p)
		}
	}
	return out
}
