package match

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/geo"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// Object is the minimal view the matcher needs of an anchor or a
// candidate. Stopo/Pole/Platform adapters in package pipeline implement
// this so the matcher stays ignorant of the concrete entity types.
type Object interface {
	ObjectID() int64
	ObjectGeometry() orb.Geometry
	ObjectTags() model.TagMap
	ObjectMods() model.ModSet
	ObjectMaybeMods() model.ModSet
}

// Candidate is one ranked match result: the matched object's id plus its
// final composite score (tag score + distance tiebreaker).
type Candidate struct {
	ID    int64
	Score float64
}

// ModFilter decides whether a candidate is compatible with an anchor on
// modality grounds (the two filters of §4.4).
type ModFilter func(anchor, candidate Object) bool

// StopoToPloleFilter accepts a stopo if its mods intersect the anchor's
// (plole/platform/pole) mods ∪ maybe_mods.
func StopoToPloleFilter(anchor, stopo Object) bool {
	return !stopo.ObjectMods().Disjoint(anchor.ObjectMods().Union(anchor.ObjectMaybeMods()))
}

// PoleToPlafoFilter accepts a pole if either its mods are non-empty and a
// subset of the platform's mods ∪ maybe_mods, or its mods are empty and
// its maybe_mods intersect the platform's mods ∪ maybe_mods.
func PoleToPlafoFilter(plafo, pole Object) bool {
	plafoUnion := plafo.ObjectMods().Union(plafo.ObjectMaybeMods())
	if !pole.ObjectMods().Empty() {
		return isSubset(pole.ObjectMods(), plafoUnion)
	}
	return !pole.ObjectMaybeMods().Disjoint(plafoUnion)
}

func isSubset(sub, super model.ModSet) bool {
	for m := range sub {
		if !super.Has(m) {
			return false
		}
	}
	return true
}

// GetNearby implements §4.4: for each anchor, find nearby candidates
// within radius, filter by modality compatibility, score by tag
// agreement plus a distance tiebreaker, and return the ranked list
// (descending score, ties broken by candidate insertion order).
func GetNearby(anchors, candidates []Object, radius float64, filter ModFilter) map[int64][]Candidate {
	entries := make([]rtreego.Spatial, 0, len(candidates))
	byID := make(map[int64]Object, len(candidates))
	order := make(map[int64]int, len(candidates))
	for i, c := range candidates {
		entries = append(entries, geo.NewIndexEntry(c.ObjectID(), c.ObjectGeometry()))
		byID[c.ObjectID()] = c
		order[c.ObjectID()] = i
	}
	index := geo.NewIndex(entries)

	results := make(map[int64][]Candidate, len(anchors))

	for _, anchor := range anchors {
		anchorGeom := anchor.ObjectGeometry()
		bound := geo.AnchorBound(anchorGeom, radius)
		hits := index.Query(bound)

		var ranked []Candidate
		for _, h := range hits {
			cand, ok := byID[h.ID()]
			if !ok {
				continue
			}
			candPoint := geo.Centroid(cand.ObjectGeometry())
			if !geo.AnchorContains(anchorGeom, radius, candPoint) {
				continue
			}
			if !filter(anchor, cand) {
				continue
			}

			_, composite := TagScore(anchor.ObjectTags(), cand.ObjectTags())
			dist := geo.PointDistance(geo.Centroid(anchorGeom), candPoint)
			tiebreak := (radius - dist) / (2 * radius)
			final := composite + tiebreak

			if final <= 0 {
				continue
			}
			ranked = append(ranked, Candidate{ID: cand.ObjectID(), Score: final})
		}

		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Score != ranked[j].Score {
				return ranked[i].Score > ranked[j].Score
			}
			return order[ranked[i].ID] < order[ranked[j].ID]
		})

		if len(ranked) > 0 {
			results[anchor.ObjectID()] = ranked
		}
	}

	return results
}
