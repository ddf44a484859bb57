package match

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

type fakeObject struct {
	id        int64
	geom      orb.Geometry
	tags      model.TagMap
	mods      model.ModSet
	maybeMods model.ModSet
}

func (o fakeObject) ObjectID() int64              { return o.id }
func (o fakeObject) ObjectGeometry() orb.Geometry { return o.geom }
func (o fakeObject) ObjectTags() model.TagMap     { return o.tags }
func (o fakeObject) ObjectMods() model.ModSet     { return o.mods }
func (o fakeObject) ObjectMaybeMods() model.ModSet {
	if o.maybeMods == nil {
		return model.NewModSet()
	}
	return o.maybeMods
}

func TestStopoToPloleFilter(t *testing.T) {
	anchor := fakeObject{mods: model.NewModSet(model.Bus), maybeMods: model.NewModSet(model.Tram)}
	compatible := fakeObject{mods: model.NewModSet(model.Tram)}
	incompatible := fakeObject{mods: model.NewModSet(model.Train)}

	if !StopoToPloleFilter(anchor, compatible) {
		t.Errorf("expected stopo compatible via maybe_mods intersection")
	}
	if StopoToPloleFilter(anchor, incompatible) {
		t.Errorf("expected stopo with disjoint mods to be rejected")
	}
}

func TestPoleToPlafoFilter(t *testing.T) {
	plafo := fakeObject{mods: model.NewModSet(model.Bus), maybeMods: model.NewModSet(model.Tram)}

	subsetPole := fakeObject{mods: model.NewModSet(model.Bus)}
	if !PoleToPlafoFilter(plafo, subsetPole) {
		t.Errorf("expected pole whose mods are a subset of plafo mods to be accepted")
	}

	supersetPole := fakeObject{mods: model.NewModSet(model.Bus, model.Train)}
	if PoleToPlafoFilter(plafo, supersetPole) {
		t.Errorf("expected pole with a mod the plafo lacks to be rejected")
	}

	maybeOnlyPole := fakeObject{maybeMods: model.NewModSet(model.Tram)}
	if !PoleToPlafoFilter(plafo, maybeOnlyPole) {
		t.Errorf("expected pole with empty mods but matching maybe_mods to be accepted")
	}
}

func TestGetNearby_RanksByCompositeScoreAndFiltersByRadius(t *testing.T) {
	anchor := fakeObject{
		id:   1,
		geom: orb.Point{0, 0},
		tags: model.TagMap{"ref": "31"},
		mods: model.NewModSet(model.Bus),
	}
	near := fakeObject{
		id:   2,
		geom: orb.Point{5, 0},
		tags: model.TagMap{"ref": "31"},
		mods: model.NewModSet(model.Bus),
	}
	far := fakeObject{
		id:   3,
		geom: orb.Point{500, 0},
		tags: model.TagMap{"ref": "31"},
		mods: model.NewModSet(model.Bus),
	}

	results := GetNearby(
		[]Object{anchor},
		[]Object{near, far},
		50,
		StopoToPloleFilter,
	)

	ranked, ok := results[1]
	if !ok {
		t.Fatalf("expected a ranked candidate list for anchor 1")
	}
	if len(ranked) != 1 || ranked[0].ID != 2 {
		t.Errorf("expected only the near candidate within radius, got %+v", ranked)
	}
}

func TestGetNearby_ModalityFilterExcludesIncompatibleCandidate(t *testing.T) {
	anchor := fakeObject{id: 1, geom: orb.Point{0, 0}, mods: model.NewModSet(model.Bus)}
	incompatible := fakeObject{id: 2, geom: orb.Point{1, 0}, mods: model.NewModSet(model.Train)}

	results := GetNearby([]Object{anchor}, []Object{incompatible}, 50, StopoToPloleFilter)
	if _, ok := results[1]; ok {
		t.Errorf("expected no matches once the modality filter excludes the only candidate")
	}
}
