package pipeline

import (
	"testing"

	"github.com/theoremus-urban-solutions/ptstop/model"
)

func TestSummarize_CountsByModalityGradeAndOrphans(t *testing.T) {
	stops := []*model.Stop{
		{ID: 1, PloleID: 10, Mods: model.NewModSet(model.Bus), RenderGrade: 3, SchemaGrade: 2},
		{ID: 2, PloleID: -1, Mods: model.NewModSet(model.Bus, model.Tram), RenderGrade: 1, SchemaGrade: 1, Warnings: []string{"x"}},
	}

	stats := Summarize(stops)

	if stats.TotalStops != 2 {
		t.Errorf("expected total 2, got %d", stats.TotalStops)
	}
	if stats.ByModality[model.Bus] != 2 {
		t.Errorf("expected 2 bus stops, got %d", stats.ByModality[model.Bus])
	}
	if stats.ByModality[model.Tram] != 1 {
		t.Errorf("expected 1 tram stop, got %d", stats.ByModality[model.Tram])
	}
	if stats.Orphans != 1 {
		t.Errorf("expected 1 orphan, got %d", stats.Orphans)
	}
	if stats.WithWarnings != 1 {
		t.Errorf("expected 1 stop with warnings, got %d", stats.WithWarnings)
	}
	if stats.ByRenderGrade[3] != 1 || stats.ByRenderGrade[1] != 1 {
		t.Errorf("expected render grade counts split, got %v", stats.ByRenderGrade)
	}
}
