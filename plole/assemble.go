// Package plole implements §4.5: pairing candidate poles to candidate
// platforms into "ploles", merging their matched-stopo rankings.
package plole

import (
	"sort"

	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/match"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// RankedStopo is one entry of a plole's merged stopo ranking.
type RankedStopo struct {
	StopoID int64
	Score   float64
}

// idAllocator hands out synthetic plole ids, counted down from -2 so they
// never collide with real OSM object ids (which are positive) or with the
// -1 that marks an orphan stop's PloleID.
type idAllocator struct{ next int64 }

func (a *idAllocator) take() int64 {
	a.next--
	return a.next
}

// Assemble implements §4.5. plafoToPoles is keyed by the match.GetNearby
// anchor id — i.e. plafoToPoles[plafoID] ranks poles as seen from that
// platform's buffer. stopoToPole/stopoToPlafo are
// keyed by pole id / plafo id respectively (those runs used pole/plafo as
// anchor, stopo as candidate).
func Assemble(
	bins *classify.Bins,
	plafoToPoles map[int64][]match.Candidate,
	stopoToPole map[int64][]match.Candidate,
	stopoToPlafo map[int64][]match.Candidate,
) []*model.Plole {
	alloc := &idAllocator{next: -1}

	platformIDs := make([]int64, 0, len(bins.Platforms))
	for id := range bins.Platforms {
		platformIDs = append(platformIDs, id)
	}
	sort.Slice(platformIDs, func(i, j int) bool {
		ai := bins.Platforms[platformIDs[i]].Area.PlanarArea()
		aj := bins.Platforms[platformIDs[j]].Area.PlanarArea()
		if ai != aj {
			return ai > aj
		}
		return platformIDs[i] < platformIDs[j]
	})

	boundPoles := make(map[int64]bool, len(bins.Poles))
	boundPlafos := make(map[int64]bool, len(platformIDs))
	var ploles []*model.Plole

	for _, plafoID := range platformIDs {
		plafo := bins.Platforms[plafoID]
		cands := plafoToPoles[plafoID]
		if len(cands) == 0 {
			continue
		}
		w := 1.0
		if len(cands) > 1 {
			w = 0.5
		}

		for _, c := range cands {
			poleID := c.ID
			if boundPoles[poleID] {
				continue
			}
			pole := bins.Poles[poleID]
			if pole == nil {
				continue
			}

			pl := &model.Plole{ID: alloc.take(), PlatformID: plafoID, PoleID: poleID}
			pl.Mods = combineMods(plafo.Mods, plafo.MaybeMods, pole.Mods, pole.MaybeMods)
			pl.MaybeMods = plafo.MaybeMods.Intersect(pole.MaybeMods)

			merged := mergeStopoRankings(
				stopoToPlafo, plafoID, w,
				stopoToPole, poleID, 1-w,
			)
			setStopoRanking(pl, merged)

			boundPoles[poleID] = true
			boundPlafos[plafoID] = true
			ploles = append(ploles, pl)
			break
		}
	}

	for _, plafoID := range platformIDs {
		if boundPlafos[plafoID] {
			continue
		}
		plafo := bins.Platforms[plafoID]
		pl := &model.Plole{ID: alloc.take(), PlatformID: plafoID}
		pl.Mods, pl.MaybeMods = plafo.Mods.Clone(), plafo.MaybeMods.Clone()
		fillFromRanking(pl, stopoToPlafo[plafoID])
		ploles = append(ploles, pl)
	}

	poleIDs := make([]int64, 0, len(bins.Poles))
	for id := range bins.Poles {
		poleIDs = append(poleIDs, id)
	}
	sort.Slice(poleIDs, func(i, j int) bool { return poleIDs[i] < poleIDs[j] })
	for _, poleID := range poleIDs {
		if boundPoles[poleID] {
			continue
		}
		pole := bins.Poles[poleID]
		pl := &model.Plole{ID: alloc.take(), PoleID: poleID}
		pl.Mods, pl.MaybeMods = pole.Mods.Clone(), pole.MaybeMods.Clone()
		fillFromRanking(pl, stopoToPole[poleID])
		ploles = append(ploles, pl)
	}

	return ploles
}

func setStopoRanking(pl *model.Plole, ranked []RankedStopo) {
	pl.StopoIDs = make([]int64, len(ranked))
	pl.StopoInfos = make([]model.StopoInfo, len(ranked))
	for i, r := range ranked {
		pl.StopoIDs[i] = r.StopoID
		pl.StopoInfos[i] = model.StopoInfo{StopoID: r.StopoID, Score: r.Score}
	}
}

func fillFromRanking(pl *model.Plole, cands []match.Candidate) {
	pl.StopoIDs = make([]int64, len(cands))
	pl.StopoInfos = make([]model.StopoInfo, len(cands))
	for i, c := range cands {
		pl.StopoIDs[i] = c.ID
		pl.StopoInfos[i] = model.StopoInfo{StopoID: c.ID, Score: c.Score}
	}
}

func combineMods(plafoMods, plafoMaybe, poleMods, poleMaybe model.ModSet) model.ModSet {
	left := plafoMods.Intersect(poleMods.Union(poleMaybe))
	right := poleMods.Intersect(plafoMods.Union(plafoMaybe))
	return left.Union(right)
}

// mergeStopoRankings intersects the two ranked stopo lists (via plafo and
// via pole), combining surviving scores as w*scoreViaPlafo + (1-w)*scoreViaPole,
// then sorts descending, ties broken by the via-plafo list's original order.
func mergeStopoRankings(
	viaPlafo map[int64][]match.Candidate, plafoID int64, wPlafo float64,
	viaPole map[int64][]match.Candidate, poleID int64, wPole float64,
) []RankedStopo {
	plafoList := viaPlafo[plafoID]
	poleList := viaPole[poleID]

	poleScore := make(map[int64]float64, len(poleList))
	for _, c := range poleList {
		poleScore[c.ID] = c.Score
	}

	order := make(map[int64]int, len(plafoList))
	var merged []RankedStopo
	for i, c := range plafoList {
		order[c.ID] = i
		ps, ok := poleScore[c.ID]
		if !ok {
			continue
		}
		merged = append(merged, RankedStopo{
			StopoID: c.ID,
			Score:   wPlafo*c.Score + wPole*ps,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		return order[merged[i].StopoID] < order[merged[j].StopoID]
	})
	return merged
}
