// Package stop implements §4.6: the three-pass stop assembler, virtual
// pole synthesis, and stop outline geometry.
package stop

import (
	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/geo"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

const postponedReason = "third choice for all nearby ploles; best score with this plole"

type idAllocator struct{ next int64 }

func (a *idAllocator) take() int64 {
	a.next++
	return a.next
}

type postponement struct {
	ploleID int64
	score   float64
}

// virtualPoles records synthesized pole points for stops that got no real
// pole, keyed by stop id, since a virtual pole id (negative) has no entry
// in the classifier bins to look its geometry up from.
type virtualPoles map[int64]orb.Point

// Assemble runs the three-pass assembler over ploles, producing one Stop
// per primary/additional/orphan stop position plus plole-only/plafo-only
// stops, then synthesizes virtual poles and stop outlines.
func Assemble(bins *classify.Bins, ploles []*model.Plole, stopBufferSize float64) []*model.Stop {
	alloc := &idAllocator{}
	used := make(map[int64]bool, len(bins.Stopos))
	primaryOf := make(map[int64]int64, len(ploles)) // plole id -> primary stopo id, if any

	var stops []*model.Stop

	// Pass A: primary stopo per plole.
	for _, pl := range ploles {
		if len(pl.StopoIDs) == 0 {
			continue
		}
		primary := pl.StopoIDs[0]
		used[primary] = true
		primaryOf[pl.ID] = primary
		stops = append(stops, newStop(alloc.take(), pl, primary))
	}

	// Pass B: additional stopos, with cross-plole postponement.
	postponed := make(map[int64]postponement)
	for _, pl := range ploles {
		if len(pl.StopoIDs) < 2 {
			continue
		}
		primary := primaryOf[pl.ID]
		runningUnion := bins.Stopos[primary].Mods.Clone()

		for _, sid := range pl.StopoIDs[1:] {
			sp := bins.Stopos[sid]
			if sp == nil {
				continue
			}
			if sp.Mods.Disjoint(runningUnion) && !sp.Mods.Disjoint(pl.Mods) {
				used[sid] = true
				runningUnion = runningUnion.Union(sp.Mods)
				stops = append(stops, newStop(alloc.take(), pl, sid))
				continue
			}
			if used[sid] {
				continue
			}
			score := scoreFor(pl, sid)
			if existing, ok := postponed[sid]; !ok || score > existing.score {
				postponed[sid] = postponement{ploleID: pl.ID, score: score}
			}
		}
	}

	ploleByID := make(map[int64]*model.Plole, len(ploles))
	for _, pl := range ploles {
		ploleByID[pl.ID] = pl
	}
	for sid, p := range postponed {
		if used[sid] {
			continue
		}
		pl, ok := ploleByID[p.ploleID]
		if !ok {
			continue
		}
		used[sid] = true
		st := newStop(alloc.take(), pl, sid)
		st.Warnings = append(st.Warnings, postponedReason)
		stops = append(stops, st)
	}

	// Pass C: orphans.
	for _, pl := range ploles {
		if _, ok := primaryOf[pl.ID]; ok {
			continue
		}
		stops = append(stops, newStop(alloc.take(), pl, 0))
	}
	for sid, sp := range bins.Stopos {
		if used[sid] {
			continue
		}
		stops = append(stops, &model.Stop{
			ID:       alloc.take(),
			PloleID:  -1,
			StopoID:  sid,
			Geometry: sp.Geometry,
			Mods:     sp.Mods.Clone(),
		})
	}

	vpoles := make(virtualPoles, len(stops))
	for _, st := range stops {
		synthesizeVirtualPole(st, bins, vpoles)
	}
	for _, st := range stops {
		st.Geometry = outline(st, bins, vpoles, stopBufferSize)
	}

	return stops
}

func newStop(id int64, pl *model.Plole, stopoID int64) *model.Stop {
	return &model.Stop{
		ID:         id,
		PloleID:    pl.ID,
		PlatformID: pl.PlatformID,
		PoleID:     pl.PoleID,
		StopoID:    stopoID,
		Mods:       pl.Mods.Clone(),
		MaybeMods:  pl.MaybeMods.Clone(),
	}
}

func scoreFor(pl *model.Plole, stopoID int64) float64 {
	for _, info := range pl.StopoInfos {
		if info.StopoID == stopoID {
			return info.Score
		}
	}
	return 0
}

// synthesizeVirtualPole fills in a negative, synthetic pole id and records
// its geometry for any stop still missing a real pole, per §4.6. A stop
// with neither a platform nor a stop position (a bare plole-only record
// from the assembler) keeps PoleID 0 — it has nothing to anchor a pole to.
func synthesizeVirtualPole(st *model.Stop, bins *classify.Bins, vpoles virtualPoles) {
	if st.PoleID != 0 {
		return
	}

	hasPlatform := st.PlatformID != 0
	hasStopo := st.StopoID != 0

	var pt orb.Point
	switch {
	case hasPlatform && hasStopo:
		plafo := bins.Platforms[st.PlatformID]
		sp := bins.Stopos[st.StopoID]
		pt = geo.NearestPoint(plafo.Geometry, sp.Geometry)
	case hasPlatform:
		plafo := bins.Platforms[st.PlatformID]
		pt = plafo.Area.Centroid()
	case hasStopo:
		sp := bins.Stopos[st.StopoID]
		pt = sp.Geometry
	default:
		return
	}

	st.PoleID = -st.ID
	vpoles[st.ID] = pt
}
