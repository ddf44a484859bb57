package modality

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/model"
	"github.com/theoremus-urban-solutions/ptstop/testutil"
)

func TestIsBus(t *testing.T) {
	cases := []struct {
		name string
		tags model.TagMap
		want Trivalent
	}{
		{"bus=yes", model.TagMap{"bus": "yes"}, Definite},
		{"highway=bus_stop", model.TagMap{"highway": "bus_stop"}, Definite},
		{"bare platform", model.TagMap{"highway": "platform"}, Possible},
		{"unrelated", model.TagMap{"railway": "signal"}, Excluded},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isBus(c.tags); got != c.want {
				t.Errorf("isBus(%v) = %v, want %v", c.tags, got, c.want)
			}
		})
	}
}

func TestIsShareTaxiHasNoPossibleBranch(t *testing.T) {
	// share_taxi is resolved as a terminal two-valued predicate: either
	// definite or excluded, never possible.
	if got := isShareTaxi(model.TagMap{"highway": "platform"}); got != Excluded {
		t.Errorf("isShareTaxi(platform) = %v, want Excluded", got)
	}
	if got := isShareTaxi(model.TagMap{"share_taxi": "yes"}); got != Definite {
		t.Errorf("isShareTaxi(share_taxi=yes) = %v, want Definite", got)
	}
}

func TestTrackBus(t *testing.T) {
	if !trackBus(model.TagMap{"highway": "residential"}) {
		t.Errorf("expected residential highway to count as bus track")
	}
	if !trackBus(model.TagMap{"psv": "yes"}) {
		t.Errorf("expected psv=yes to count as bus track regardless of highway value")
	}
	if trackBus(model.TagMap{"highway": "footway"}) {
		t.Errorf("did not expect footway to count as bus track")
	}
}

func TestTrackTrainConstruction(t *testing.T) {
	tags := model.TagMap{"railway": "construction", "construction": "rail"}
	if !trackTrain(tags) {
		t.Errorf("expected under-construction rail to count as train track")
	}
	tags2 := model.TagMap{"railway": "construction", "construction": "tram"}
	if trackTrain(tags2) {
		t.Errorf("did not expect under-construction tram to count as train track")
	}
}

func TestTrackModsForWaySuppressesFastPathOnPlatformWay(t *testing.T) {
	reg := NewModalityRegistry()
	// a way tagged both bus=yes and highway=platform is a platform, not a
	// track, so the bus=yes fast path must not contribute a bus mod.
	tags := model.TagMap{"bus": "yes", "highway": "platform"}
	mods := reg.TrackModsForWay(tags)
	if mods.Has(model.Bus) {
		t.Errorf("expected bus fast path suppressed on platform-like way")
	}
}

func TestTrackModsForWayRoadTrack(t *testing.T) {
	reg := NewModalityRegistry()
	mods := reg.TrackModsForWay(model.TagMap{"highway": "secondary", "bus": "yes"})
	if !mods.Has(model.Bus) {
		t.Errorf("expected bus mod from road track tag table")
	}
}

func TestModalityRegistryByFamily(t *testing.T) {
	reg := NewModalityRegistry()
	road := reg.ByFamily(model.FamilyRoad)
	if len(road) != 3 {
		t.Fatalf("expected 3 road-family rules, got %d", len(road))
	}
	if _, ok := reg.ByModality(model.Bus); !ok {
		t.Errorf("expected bus rule registered")
	}
}

func TestSealStoposAndPoles_StopWithoutTrackGoesDubious(t *testing.T) {
	node := testutil.BusStopNode(1, 10.0, 59.9)
	bins := classify.Classify([]*model.Node{node}, nil)

	inf := NewInference()
	inf.SealPlatformsAndStations(bins)
	dubious := inf.SealStoposAndPoles(bins, nil)

	if len(dubious) != 1 {
		t.Fatalf("expected stopo with no adjacent track to become dubious, got %d dubious", len(dubious))
	}
	if _, ok := bins.Stopos[1]; ok {
		t.Errorf("expected stopo removed from bins after going dubious")
	}
}

func TestSealStoposAndPoles_MergesTrackModality(t *testing.T) {
	node := testutil.BusStopNode(2, 10.0, 59.9)
	bins := classify.Classify([]*model.Node{node}, nil)

	track := testutil.BusTrackWay(200, []int64{2}, []orb.Point{{10.0, 59.9}})

	inf := NewInference()
	inf.SealPlatformsAndStations(bins)
	dubious := inf.SealStoposAndPoles(bins, []*model.Way{track})

	if len(dubious) != 0 {
		t.Fatalf("expected no dubious objects, got %d", len(dubious))
	}
	sp, ok := bins.Stopos[2]
	if !ok {
		t.Fatalf("expected stopo 2 to survive")
	}
	if !sp.Mods.Has(model.Bus) {
		t.Errorf("expected stop position sealed with bus modality, got %v", sp.Mods.Sorted())
	}
}

func TestSealStoposAndPoles_DualRoleNodeKeptAsStopoOnly(t *testing.T) {
	node := testutil.NewNode(3, 10.0, 59.9).
		Tag("highway", "bus_stop").
		Build()
	bins := classify.Classify([]*model.Node{node}, nil)

	track := testutil.BusTrackWay(300, []int64{3}, []orb.Point{{10.0, 59.9}})

	inf := NewInference()
	inf.SealPlatformsAndStations(bins)
	inf.SealStoposAndPoles(bins, []*model.Way{track})

	if _, ok := bins.Stopos[3]; !ok {
		t.Errorf("expected node kept as stop position")
	}
	if _, ok := bins.Poles[3]; ok {
		t.Errorf("expected node dropped from poles once resolved as stop position")
	}
}
