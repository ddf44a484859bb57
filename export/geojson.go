package export

import (
	"sort"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/theoremus-urban-solutions/ptstop/geo"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// StopsLayer converts a region's finished stops into the "stops" GeoJSON
// layer: type discriminator, flattened diagnostics, comma-joined
// modalities (NO_MODALITY sentinel for empties), and lon/lat popup
// anchors reprojected from the region's metric CRS.
func StopsLayer(stops []*model.Stop, proj *geo.Projection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, st := range stops {
		f := geojson.NewFeature(st.Geometry)
		f.ID = st.ID
		lonLat := proj.ToGeographic(geo.Centroid(st.Geometry))
		f.Properties = geojson.Properties{
			"type":         "stop",
			"plole_id":     st.PloleID,
			"platform_id":  st.PlatformID,
			"pole_id":      st.PoleID,
			"stopo_id":     st.StopoID,
			"mods":         joinMods(st.Mods),
			"maybe_mods":   joinMods(st.MaybeMods),
			"render_grade": st.RenderGrade,
			"schema_grade": st.SchemaGrade,
			"warnings":     strings.Join(st.Warnings, "; "),
			"region_code":  st.RegionCode,
			"lon":          lonLat[0],
			"lat":          lonLat[1],
		}
		fc.Append(f)
	}
	return fc
}

// StopCentroidsLayer converts a region's stops into the "nstops" layer:
// the same properties as StopsLayer but with each feature's geometry
// reduced to its centroid point, for map styles that render stops as
// markers rather than outlines.
func StopCentroidsLayer(stops []*model.Stop, proj *geo.Projection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, st := range stops {
		centroid := geo.Centroid(st.Geometry)
		f := geojson.NewFeature(centroid)
		f.ID = st.ID
		lonLat := proj.ToGeographic(centroid)
		f.Properties = geojson.Properties{
			"type":         "stop",
			"plole_id":     st.PloleID,
			"platform_id":  st.PlatformID,
			"pole_id":      st.PoleID,
			"stopo_id":     st.StopoID,
			"mods":         joinMods(st.Mods),
			"maybe_mods":   joinMods(st.MaybeMods),
			"render_grade": st.RenderGrade,
			"schema_grade": st.SchemaGrade,
			"warnings":     strings.Join(st.Warnings, "; "),
			"region_code":  st.RegionCode,
			"lon":          lonLat[0],
			"lat":          lonLat[1],
		}
		fc.Append(f)
	}
	return fc
}

// DubiousLayer converts the accumulated dubious-object list into a
// GeoJSON layer for manual review.
func DubiousLayer(dubious []*model.DubiousObject, proj *geo.Projection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, d := range dubious {
		f := geojson.NewFeature(d.Geometry)
		f.ID = d.ID
		lonLat := proj.ToGeographic(geo.Centroid(d.Geometry))
		f.Properties = geojson.Properties{
			"type":   "dubious",
			"kind":   d.Kind.String(),
			"reason": d.Reason,
			"lon":    lonLat[0],
			"lat":    lonLat[1],
		}
		fc.Append(f)
	}
	return fc
}

func joinMods(mods model.ModSet) string {
	sorted := mods.Sorted()
	if len(sorted) == 0 {
		return model.NoModality
	}
	names := make([]string, len(sorted))
	for i, m := range sorted {
		names[i] = string(m)
	}
	return strings.Join(names, ",")
}

// ProvenanceRecord is the §3.1 supplemented per-plole export: the plole's
// platform/pole ids, its modalities, and its full ranked stopo list with
// merged scores, kept for operators auditing why a given stopo ended up (or
// didn't end up) attached to a plole. It does not record which matcher pass
// produced the binding.
type ProvenanceRecord struct {
	PloleID    int64               `json:"plole_id"`
	PlatformID int64               `json:"platform_id,omitempty"`
	PoleID     int64               `json:"pole_id,omitempty"`
	Mods       []string            `json:"mods"`
	MaybeMods  []string            `json:"maybe_mods"`
	RankedStopos []ProvenanceStopo `json:"ranked_stopos"`
}

// ProvenanceStopo is one ranked candidate entry inside a ProvenanceRecord.
type ProvenanceStopo struct {
	StopoID int64   `json:"stopo_id"`
	Score   float64 `json:"score"`
}

// BuildProvenance converts a Plole into its exportable provenance record.
func BuildProvenance(pl *model.Plole) ProvenanceRecord {
	rec := ProvenanceRecord{
		PloleID:    pl.ID,
		PlatformID: pl.PlatformID,
		PoleID:     pl.PoleID,
		Mods:       modNames(pl.Mods),
		MaybeMods:  modNames(pl.MaybeMods),
	}
	rec.RankedStopos = make([]ProvenanceStopo, len(pl.StopoInfos))
	for i, info := range pl.StopoInfos {
		rec.RankedStopos[i] = ProvenanceStopo{StopoID: info.StopoID, Score: info.Score}
	}
	return rec
}

func modNames(mods model.ModSet) []string {
	sorted := mods.Sorted()
	names := make([]string, len(sorted))
	for i, m := range sorted {
		names[i] = string(m)
	}
	return names
}

// DubiousReportEntry is one line of the grouped dubious-object report,
// counting how many dubious objects share a reason string.
type DubiousReportEntry struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
	IDs    []int64 `json:"ids"`
}

// BuildDubiousReport groups the region's dubious objects by reason,
// sorted by frequency descending (ties broken by reason text), in the
// spirit of this codebase's grouped-result reporting, repurposed from
// rule-code grouping to taxonomic-reason grouping.
func BuildDubiousReport(dubious []*model.DubiousObject) []DubiousReportEntry {
	byReason := make(map[string][]int64)
	for _, d := range dubious {
		byReason[d.Reason] = append(byReason[d.Reason], d.ID)
	}
	entries := make([]DubiousReportEntry, 0, len(byReason))
	for reason, ids := range byReason {
		entries = append(entries, DubiousReportEntry{Reason: reason, Count: len(ids), IDs: ids})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Reason < entries[j].Reason
	})
	return entries
}
