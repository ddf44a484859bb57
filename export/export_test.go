package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/geo"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

func TestStoposLayer_EmitsOneFeaturePerStopo(t *testing.T) {
	bins := &classify.Bins{Stopos: map[int64]*model.StopPosition{
		1: {NodeID: 1, Node: &model.Node{ID: 1}, Geometry: orb.Point{0, 0}, Mods: model.NewModSet(model.Bus)},
	}}
	proj := geo.NewProjection(orb.Point{10, 59})

	fc := StoposLayer(bins, proj)
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	if fc.Features[0].Properties["mods"] != "bus" {
		t.Errorf("expected mods property 'bus', got %v", fc.Features[0].Properties["mods"])
	}
}

func TestJoinMods_EmptySetUsesSentinel(t *testing.T) {
	if got := joinMods(model.NewModSet()); got != model.NoModality {
		t.Errorf("expected sentinel for empty mod set, got %q", got)
	}
}

func TestBuildProvenance_CarriesRankedStopos(t *testing.T) {
	pl := &model.Plole{
		ID: 5, PlatformID: 100, Mods: model.NewModSet(model.Bus),
		StopoInfos: []model.StopoInfo{{StopoID: 1, Score: 3.5}},
	}
	rec := BuildProvenance(pl)
	if rec.PloleID != 5 || len(rec.RankedStopos) != 1 || rec.RankedStopos[0].StopoID != 1 {
		t.Errorf("expected provenance record to carry plole id and ranked stopos, got %+v", rec)
	}
}

func TestBuildDubiousReport_GroupsByReasonDescendingCount(t *testing.T) {
	dubious := []*model.DubiousObject{
		{ID: 1, Reason: "a"},
		{ID: 2, Reason: "a"},
		{ID: 3, Reason: "b"},
	}
	report := BuildDubiousReport(dubious)
	if len(report) != 2 {
		t.Fatalf("expected 2 grouped entries, got %d", len(report))
	}
	if report[0].Reason != "a" || report[0].Count != 2 {
		t.Errorf("expected reason 'a' with count 2 first, got %+v", report[0])
	}
}

func TestGeoJSONDirWriter_WritesLayerPloleAndReportFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewGeoJSONDirWriter(filepath.Join(dir, "export"), filepath.Join(dir, "ploles"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bins := &classify.Bins{Stopos: map[int64]*model.StopPosition{
		1: {NodeID: 1, Node: &model.Node{ID: 1}, Geometry: orb.Point{0, 0}, Mods: model.NewModSet(model.Bus)},
	}}
	proj := geo.NewProjection(orb.Point{0, 0})
	if err := w.WriteLayer("OSLO_stopos", StoposLayer(bins, proj)); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "export", "OSLO_stopos.geojson")); err != nil {
		t.Errorf("expected layer file written: %v", err)
	}

	rec := BuildProvenance(&model.Plole{ID: 7})
	if err := WriteProvenance(w, rec); err != nil {
		t.Fatalf("unexpected provenance write error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "ploles", "plole_7.json"))
	if err != nil {
		t.Fatalf("expected plole file written: %v", err)
	}
	var got ProvenanceRecord
	if err := json.Unmarshal(data, &got); err != nil || got.PloleID != 7 {
		t.Errorf("expected round-tripped provenance record, got %+v, err %v", got, err)
	}
}
