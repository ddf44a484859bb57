package geo

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// indexedPoint adapts a metric-plane point to rtreego.Spatial so the
// bulk-loaded R-tree of §9 can index arbitrary candidate geometries by
// their bounding rectangle.
type indexedPoint struct {
	id     int64
	point  orb.Point
	bounds *rtreego.Rect
}

func (p *indexedPoint) Bounds() *rtreego.Rect { return p.bounds }

// ID returns the candidate's original identity (node or area id).
func (p *indexedPoint) ID() int64 { return p.id }

// Point returns the candidate's metric-plane location.
func (p *indexedPoint) Point() orb.Point { return p.point }

const epsilon = 1e-6

// NewIndexEntry builds an rtreego.Spatial entry for a candidate geometry,
// using its bounding box (inflated by an epsilon so degenerate point
// geometries still have a positive-volume rectangle, which rtreego
// requires).
func NewIndexEntry(id int64, g orb.Geometry) rtreego.Spatial {
	b := g.Bound()
	minPt := [2]float64{b.Min[0] - epsilon, b.Min[1] - epsilon}
	lengths := [2]float64{b.Max[0] - b.Min[0] + 2*epsilon, b.Max[1] - b.Min[1] + 2*epsilon}
	rect, _ := rtreego.NewRect(minPt[:], lengths[:])
	center := centroidOf(g)
	return &indexedPoint{id: id, point: center, bounds: rect}
}

func centroidOf(g orb.Geometry) orb.Point {
	switch v := g.(type) {
	case orb.Point:
		return v
	default:
		b := v.Bound()
		return orb.Point{(b.Min[0] + b.Max[0]) / 2, (b.Min[1] + b.Max[1]) / 2}
	}
}

// Index is a bulk-loaded R-tree over candidate geometries, queried by
// rectangular containment against an anchor's buffer (§4.4).
type Index struct {
	tree *rtreego.Rtree
}

// NewIndex bulk-loads entries into a fresh R-tree.
func NewIndex(entries []rtreego.Spatial) *Index {
	tree := rtreego.NewTree(2, 25, 50, entries...)
	return &Index{tree: tree}
}

// Query returns every candidate whose bounding rectangle intersects the
// given search rectangle (built from the anchor's buffered geometry).
func (idx *Index) Query(bufferBound orb.Bound) []*indexedPoint {
	minPt := [2]float64{bufferBound.Min[0], bufferBound.Min[1]}
	lengths := [2]float64{bufferBound.Max[0] - bufferBound.Min[0], bufferBound.Max[1] - bufferBound.Min[1]}
	rect, err := rtreego.NewRect(minPt[:], lengths[:])
	if err != nil {
		return nil
	}
	results := idx.tree.SearchIntersect(rect)
	out := make([]*indexedPoint, 0, len(results))
	for _, r := range results {
		if p, ok := r.(*indexedPoint); ok {
			out = append(out, p)
		}
	}
	return out
}
