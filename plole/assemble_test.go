package plole

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/match"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

func newBinsWithOnePlafoOnePole() (*classify.Bins, int64, int64) {
	const plafoID, poleID = int64(100), int64(200)
	bins := &classify.Bins{
		Stopos:    make(map[int64]*model.StopPosition),
		Poles:     make(map[int64]*model.Pole),
		Platforms: make(map[int64]*model.Platform),
	}
	bins.Platforms[plafoID] = &model.Platform{
		AreaID: plafoID,
		Area:   &model.Area{ID: plafoID, Tags: model.TagMap{}, Geometry: orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}},
		Mods:   model.NewModSet(model.Bus),
	}
	bins.Poles[poleID] = &model.Pole{
		NodeID: poleID,
		Node:   &model.Node{ID: poleID, Tags: model.TagMap{}},
		Mods:   model.NewModSet(model.Bus),
	}
	return bins, plafoID, poleID
}

func TestAssemble_PairsPlafoWithPole(t *testing.T) {
	bins, plafoID, poleID := newBinsWithOnePlafoOnePole()

	plafoToPoles := map[int64][]match.Candidate{plafoID: {{ID: poleID, Score: 5}}}

	ploles := Assemble(bins, plafoToPoles, nil, nil)

	if len(ploles) != 1 {
		t.Fatalf("expected exactly one plole, got %d", len(ploles))
	}
	pl := ploles[0]
	if pl.PlatformID != plafoID || pl.PoleID != poleID {
		t.Errorf("expected plole to bind platform %d and pole %d, got %+v", plafoID, poleID, pl)
	}
	if !pl.HasPlatform() || !pl.HasPole() {
		t.Errorf("expected both HasPlatform and HasPole true")
	}
}

func TestAssemble_UnboundPlafoBecomesPlatformOnlyPlole(t *testing.T) {
	bins := &classify.Bins{
		Stopos:    make(map[int64]*model.StopPosition),
		Poles:     make(map[int64]*model.Pole),
		Platforms: make(map[int64]*model.Platform),
	}
	bins.Platforms[1] = &model.Platform{
		AreaID: 1,
		Area:   &model.Area{ID: 1, Tags: model.TagMap{}, Geometry: orb.Polygon{{{0, 0}, {5, 0}, {5, 5}, {0, 5}, {0, 0}}}},
		Mods:   model.NewModSet(model.Bus),
	}

	ploles := Assemble(bins, nil, nil, nil)

	if len(ploles) != 1 {
		t.Fatalf("expected one platform-only plole, got %d", len(ploles))
	}
	if ploles[0].HasPole() {
		t.Errorf("expected platform-only plole to have no pole")
	}
	if ploles[0].ID >= 0 {
		t.Errorf("expected synthetic plole id to be negative, got %d", ploles[0].ID)
	}
}

func TestAssemble_UnboundPoleBecomesPoleOnlyPlole(t *testing.T) {
	bins := &classify.Bins{
		Stopos:    make(map[int64]*model.StopPosition),
		Poles:     make(map[int64]*model.Pole),
		Platforms: make(map[int64]*model.Platform),
	}
	bins.Poles[5] = &model.Pole{NodeID: 5, Node: &model.Node{ID: 5, Tags: model.TagMap{}}, Mods: model.NewModSet(model.Bus)}

	ploles := Assemble(bins, nil, nil, nil)

	if len(ploles) != 1 {
		t.Fatalf("expected one pole-only plole, got %d", len(ploles))
	}
	if ploles[0].HasPlatform() {
		t.Errorf("expected pole-only plole to have no platform")
	}
}

func TestAssemble_MergesStopoRankingFromBothSides(t *testing.T) {
	bins, plafoID, poleID := newBinsWithOnePlafoOnePole()

	// two candidate poles (one absent from bins) so the plafo/pole weight
	// split is 0.5/0.5 rather than the single-candidate 1.0/0.0 case.
	plafoToPoles := map[int64][]match.Candidate{plafoID: {{ID: 999, Score: 1}, {ID: poleID, Score: 5}}}
	stopoToPlafo := map[int64][]match.Candidate{plafoID: {{ID: 900, Score: 4}}}
	stopoToPole := map[int64][]match.Candidate{poleID: {{ID: 900, Score: 6}}}

	ploles := Assemble(bins, plafoToPoles, stopoToPole, stopoToPlafo)

	if len(ploles) != 1 {
		t.Fatalf("expected one plole, got %d", len(ploles))
	}
	pl := ploles[0]
	if len(pl.StopoIDs) != 1 || pl.StopoIDs[0] != 900 {
		t.Fatalf("expected stopo 900 merged into plole ranking, got %v", pl.StopoIDs)
	}
	want := 0.5*4 + 0.5*6
	if pl.StopoInfos[0].Score != want {
		t.Errorf("expected merged score %v, got %v", want, pl.StopoInfos[0].Score)
	}
}
