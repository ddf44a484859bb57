package geo

import (
	"testing"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

func TestIndex_QueryFindsIntersectingEntries(t *testing.T) {
	entries := []rtreego.Spatial{
		NewIndexEntry(1, orb.Point{0, 0}),
		NewIndexEntry(2, orb.Point{100, 100}),
	}
	idx := NewIndex(entries)

	hits := idx.Query(orb.Bound{Min: orb.Point{-5, -5}, Max: orb.Point{5, 5}})
	if len(hits) != 1 || hits[0].ID() != 1 {
		t.Fatalf("expected only entry 1 to match the query bound, got %+v", hits)
	}
}

func TestAnchorBound_InflatesByRadius(t *testing.T) {
	bound := AnchorBound(orb.Point{0, 0}, 10)
	if bound.Min[0] != -10 || bound.Max[0] != 10 {
		t.Errorf("expected bound inflated by radius on both sides, got %v", bound)
	}
}
