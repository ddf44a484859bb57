// Package annotate implements §4.7: deriving each stop's final
// modalities, rendering grade, schema grade, and taxonomic warnings.
package annotate

import (
	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/geo"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// Annotate fills in Mods/MaybeMods, RenderGrade, SchemaGrade, and Warnings
// on every stop, given the classifier bins a stop's components live in.
func Annotate(stops []*model.Stop, bins *classify.Bins, ploles map[int64]*model.Plole) {
	for _, st := range stops {
		modalities(st, bins, ploles)
		renderGrade(st, bins)
		schemaGrade(st, bins, ploles)
		warnings(st)
	}
}

func modalities(st *model.Stop, bins *classify.Bins, ploles map[int64]*model.Plole) {
	hasPlole := st.PloleID != -1
	hasStopo := st.StopoID != 0

	switch {
	case hasPlole && hasStopo:
		pl := ploles[st.PloleID]
		sp := bins.Stopos[st.StopoID]
		shared := pl.Mods.Intersect(sp.Mods)
		switch len(shared) {
		case 0:
			st.Mods = model.NewModSet()
			st.MaybeMods = pl.Mods.Union(sp.Mods)
		case 1:
			st.Mods = shared
			st.MaybeMods = model.NewModSet()
		default:
			st.Mods = model.NewModSet()
			st.MaybeMods = shared
		}
	case hasPlole:
		pl := ploles[st.PloleID]
		st.Mods = pl.Mods.Clone()
		st.MaybeMods = pl.MaybeMods.Clone()
	case hasStopo:
		sp := bins.Stopos[st.StopoID]
		st.Mods = sp.Mods.Clone()
		st.MaybeMods = model.NewModSet()
	default:
		st.Mods = model.NewModSet()
		st.MaybeMods = model.NewModSet()
	}
}

func isVisiblePlatformTag(t model.TagMap) bool {
	return t.HasTag("public_transport", "platform") || t.HasTag("highway", "platform") || t.HasTag("railway", "platform")
}

// hasAreaBusStopSymbol reports whether a platform area carries a bus-stop
// symbol: highway=bus_stop on an area=yes or building area.
func hasAreaBusStopSymbol(t model.TagMap) bool {
	return t.HasTag("highway", "bus_stop") && (t.HasTag("area", "yes") || t.Has("building"))
}

func renderGrade(st *model.Stop, bins *classify.Bins) {
	if !st.Mods.Has(model.Bus) {
		st.RenderGrade = 0
		return
	}

	symbols := 0
	poleHasSymbol := false

	if st.StopoID != 0 && bins.Stopos[st.StopoID].Node.Tags.HasTag("highway", "bus_stop") {
		symbols++
	}
	if st.PoleID > 0 {
		pole := bins.Poles[st.PoleID]
		if pole.Node.Tags.HasTag("highway", "bus_stop") {
			symbols++
			poleHasSymbol = true
		}
	}
	platformVisible := true
	if st.PlatformID != 0 {
		plafo := bins.Platforms[st.PlatformID]
		platformVisible = isVisiblePlatformTag(plafo.Area.Tags)
		if hasAreaBusStopSymbol(plafo.Area.Tags) {
			symbols++
		}
	}

	var grade int
	switch {
	case symbols == 0:
		grade = 1
	case symbols > 1 || (!platformVisible && !poleHasSymbol):
		grade = 2
	default:
		grade = 3
	}

	if grade == 1 && intersectsBusStation(st, bins) {
		grade = 4
	}
	st.RenderGrade = grade
}

func intersectsBusStation(st *model.Stop, bins *classify.Bins) bool {
	c := geo.Centroid(st.Geometry)
	for _, station := range bins.Stations {
		if !station.Mods.Has(model.Bus) {
			continue
		}
		if geo.GeometryContainsPoint(station.Geometry, c) {
			return true
		}
	}
	return false
}

func schemaGrade(st *model.Stop, bins *classify.Bins, ploles map[int64]*model.Plole) {
	total, withTag := 0, 0
	check := func(tags model.TagMap) {
		total++
		if tags.Has("public_transport") {
			withTag++
		}
	}
	if st.PlatformID != 0 {
		check(bins.Platforms[st.PlatformID].Area.Tags)
	}
	if st.PoleID > 0 {
		check(bins.Poles[st.PoleID].Node.Tags)
	}
	if st.StopoID != 0 {
		check(bins.Stopos[st.StopoID].Node.Tags)
	}

	switch {
	case total == 0:
		st.SchemaGrade = 1
	case withTag == total:
		st.SchemaGrade = 3
	case withTag == 0:
		st.SchemaGrade = 1
	default:
		st.SchemaGrade = 2
	}
}

func warnings(st *model.Stop) {
	if !st.Mods.Empty() {
		return
	}
	switch {
	case st.StopoID == 0 && st.PlatformID != 0 && st.PoleID <= 0:
		st.Warnings = append(st.Warnings, "platform-only stop with no resolvable modality; likely an ambiguous shared-use platform")
	case st.PoleID > 0 && st.PlatformID == 0:
		st.Warnings = append(st.Warnings, "pole-only stop with no resolvable modality; possibly a bus pole tagged directly on the carriageway")
	default:
		st.Warnings = append(st.Warnings, "stop has no resolvable modality; review source tagging")
	}
}
