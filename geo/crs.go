package geo

import (
	"regexp"
	"strconv"

	"github.com/paulmach/orb"
)

var latLonParam = regexp.MustCompile(`\+(lat|lon)_0=([-0-9.]+)`)

// OriginFromCRS extracts the lat_0/lon_0 parameters from a proj4-style
// CRS definition string (e.g. "+proj=aeqd +lat_0=59.91 +lon_0=10.75") and
// returns them as a geographic origin point. No library in this
// codebase's dependency pool parses proj4 strings, and the region
// manifest only ever needs this one pair of parameters out of it, so a
// small regexp extraction replaces a full CRS engine — see DESIGN.md.
func OriginFromCRS(crs string) (orb.Point, bool) {
	matches := latLonParam.FindAllStringSubmatch(crs, -1)
	var lat, lon float64
	var haveLat, haveLon bool
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		switch m[1] {
		case "lat":
			lat, haveLat = v, true
		case "lon":
			lon, haveLon = v, true
		}
	}
	if !haveLat || !haveLon {
		return orb.Point{}, false
	}
	return orb.Point{lon, lat}, true
}
