package annotate

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

func newBins() *classify.Bins {
	return &classify.Bins{
		Stopos:    make(map[int64]*model.StopPosition),
		Poles:     make(map[int64]*model.Pole),
		Platforms: make(map[int64]*model.Platform),
	}
}

func TestAnnotate_ModalitiesSingleSharedModalityResolves(t *testing.T) {
	bins := newBins()
	bins.Stopos[1] = &model.StopPosition{NodeID: 1, Node: &model.Node{ID: 1, Tags: model.TagMap{}}, Mods: model.NewModSet(model.Bus)}
	ploles := map[int64]*model.Plole{10: {ID: 10, Mods: model.NewModSet(model.Bus, model.Tram)}}

	st := &model.Stop{ID: 1, PloleID: 10, StopoID: 1, Geometry: orb.Polygon{}}
	Annotate([]*model.Stop{st}, bins, ploles)

	if !st.Mods.Has(model.Bus) || len(st.Mods) != 1 {
		t.Errorf("expected single resolved bus modality, got %v", st.Mods.Sorted())
	}
	if !st.MaybeMods.Empty() {
		t.Errorf("expected no maybe_mods when a single modality resolves, got %v", st.MaybeMods.Sorted())
	}
}

func TestAnnotate_ModalitiesDisjointGoesToMaybe(t *testing.T) {
	bins := newBins()
	bins.Stopos[1] = &model.StopPosition{NodeID: 1, Node: &model.Node{ID: 1, Tags: model.TagMap{}}, Mods: model.NewModSet(model.Tram)}
	ploles := map[int64]*model.Plole{10: {ID: 10, Mods: model.NewModSet(model.Bus)}}

	st := &model.Stop{ID: 1, PloleID: 10, StopoID: 1, Geometry: orb.Polygon{}}
	Annotate([]*model.Stop{st}, bins, ploles)

	if !st.Mods.Empty() {
		t.Errorf("expected empty mods on disjoint plole/stopo modalities, got %v", st.Mods.Sorted())
	}
	if !st.MaybeMods.Has(model.Bus) || !st.MaybeMods.Has(model.Tram) {
		t.Errorf("expected maybe_mods to union both sides, got %v", st.MaybeMods.Sorted())
	}
}

func TestAnnotate_RenderGradeZeroWithoutBus(t *testing.T) {
	bins := newBins()
	bins.Stopos[1] = &model.StopPosition{NodeID: 1, Node: &model.Node{ID: 1, Tags: model.TagMap{}}, Mods: model.NewModSet(model.Tram)}

	st := &model.Stop{ID: 1, PloleID: -1, StopoID: 1, Geometry: orb.Polygon{}}
	Annotate([]*model.Stop{st}, bins, nil)

	if st.RenderGrade != 0 {
		t.Errorf("expected render grade 0 for a non-bus stop, got %d", st.RenderGrade)
	}
}

func TestAnnotate_WarningAttachedWhenModsEmpty(t *testing.T) {
	bins := newBins()
	bins.Platforms[5] = &model.Platform{AreaID: 5, Area: &model.Area{ID: 5, Tags: model.TagMap{}}}

	st := &model.Stop{ID: 1, PloleID: -1, PlatformID: 5, Geometry: orb.Polygon{}}
	Annotate([]*model.Stop{st}, bins, nil)

	if len(st.Warnings) != 1 {
		t.Fatalf("expected exactly one warning for an empty-mods platform-only stop, got %v", st.Warnings)
	}
}

func TestAnnotate_SchemaGradeAllTagged(t *testing.T) {
	bins := newBins()
	bins.Stopos[1] = &model.StopPosition{NodeID: 1, Node: &model.Node{ID: 1, Tags: model.TagMap{"public_transport": "stop_position"}}, Mods: model.NewModSet(model.Bus)}

	st := &model.Stop{ID: 1, PloleID: -1, StopoID: 1, Mods: model.NewModSet(model.Bus), Geometry: orb.Polygon{}}
	Annotate([]*model.Stop{st}, bins, nil)

	if st.SchemaGrade != 3 {
		t.Errorf("expected schema grade 3 when the only component carries public_transport, got %d", st.SchemaGrade)
	}
}
