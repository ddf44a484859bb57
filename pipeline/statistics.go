package pipeline

import "github.com/theoremus-urban-solutions/ptstop/model"

// Statistics summarizes a region's finished stop set by modality and by
// grade, for the kind of per-region rollup an operator scans after a run.
type Statistics struct {
	TotalStops int

	ByModality map[model.Modality]int

	ByRenderGrade map[int]int
	BySchemaGrade map[int]int

	WithWarnings int
	Orphans      int
}

// Summarize computes Statistics over a finished stop list.
func Summarize(stops []*model.Stop) Statistics {
	stats := Statistics{
		ByModality:    make(map[model.Modality]int),
		ByRenderGrade: make(map[int]int),
		BySchemaGrade: make(map[int]int),
	}
	stats.TotalStops = len(stops)

	for _, st := range stops {
		for _, m := range st.Mods.Sorted() {
			stats.ByModality[m]++
		}
		stats.ByRenderGrade[st.RenderGrade]++
		stats.BySchemaGrade[st.SchemaGrade]++
		if len(st.Warnings) > 0 {
			stats.WithWarnings++
		}
		if st.PloleID == -1 {
			stats.Orphans++
		}
	}
	return stats
}
