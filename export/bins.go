package export

import (
	"sort"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/geo"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// sortedKeys returns m's keys in ascending order, so features built from a
// map range deterministically regardless of Go's randomized map iteration
// (§8 invariant 6: re-running on the same input must produce byte-identical
// export files).
func sortedKeys[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// StoposLayer converts the classifier's stop-position bin into a GeoJSON
// layer, for operators inspecting matcher input independently of the
// finished stops.
func StoposLayer(bins *classify.Bins, proj *geo.Projection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, id := range sortedKeys(bins.Stopos) {
		sp := bins.Stopos[id]
		f := geojson.NewFeature(sp.Geometry)
		f.ID = id
		lonLat := proj.ToGeographic(sp.Geometry)
		f.Properties = geojson.Properties{
			"type":       "stopo",
			"mods":       joinMods(sp.Mods),
			"comments":   strings.Join(sp.Node.Comments, "; "),
			"warnings":   strings.Join(sp.Node.Warnings, "; "),
			"lon":        lonLat[0],
			"lat":        lonLat[1],
		}
		fc.Append(f)
	}
	return fc
}

// PolesLayer converts the classifier's pole bin into a GeoJSON layer.
func PolesLayer(bins *classify.Bins, proj *geo.Projection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, id := range sortedKeys(bins.Poles) {
		p := bins.Poles[id]
		f := geojson.NewFeature(p.Geometry)
		f.ID = id
		lonLat := proj.ToGeographic(p.Geometry)
		f.Properties = geojson.Properties{
			"type":       "pole",
			"mods":       joinMods(p.Mods),
			"maybe_mods": joinMods(p.MaybeMods),
			"comments":   strings.Join(p.Node.Comments, "; "),
			"warnings":   strings.Join(p.Node.Warnings, "; "),
			"lon":        lonLat[0],
			"lat":        lonLat[1],
		}
		fc.Append(f)
	}
	return fc
}

// PlafosLayer converts the classifier's platform bin into a GeoJSON layer.
func PlafosLayer(bins *classify.Bins, proj *geo.Projection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, id := range sortedKeys(bins.Platforms) {
		p := bins.Platforms[id]
		f := geojson.NewFeature(p.Geometry)
		f.ID = id
		lonLat := proj.ToGeographic(geo.Centroid(p.Geometry))
		f.Properties = geojson.Properties{
			"type":       "plafo",
			"mods":       joinMods(p.Mods),
			"maybe_mods": joinMods(p.MaybeMods),
			"comments":   strings.Join(p.Area.Comments, "; "),
			"warnings":   strings.Join(p.Area.Warnings, "; "),
			"lon":        lonLat[0],
			"lat":        lonLat[1],
		}
		fc.Append(f)
	}
	return fc
}
