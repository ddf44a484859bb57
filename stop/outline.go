package stop

import (
	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/geo"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// outline builds a stop's rendered geometry: the union of the buffered
// platform (round caps) and the convex hull of {pole, stopo} buffered
// identically, per §4.6. All inputs are already in the metric projection
// established for the region, which doubles as the flat CRS the buffering
// math needs — there is no reprojection step into a distinct "web" CRS
// anywhere in this implementation, here or at export time.
func outline(st *model.Stop, bins *classify.Bins, vpoles virtualPoles, bufferSize float64) orb.Geometry {
	var platformBuf orb.Polygon
	havePlatform := false
	if st.PlatformID != 0 {
		plafo := bins.Platforms[st.PlatformID]
		platformBuf = geo.BufferRound(plafo.Geometry, bufferSize)
		havePlatform = true
	}

	var anchorPoints []orb.Point
	if st.StopoID != 0 {
		anchorPoints = append(anchorPoints, bins.Stopos[st.StopoID].Geometry)
	}
	if st.PoleID > 0 {
		anchorPoints = append(anchorPoints, bins.Poles[st.PoleID].Geometry)
	} else if st.PoleID < 0 {
		if pt, ok := vpoles[st.ID]; ok {
			anchorPoints = append(anchorPoints, pt)
		}
	}

	var anchorBuf orb.Polygon
	haveAnchor := false
	if len(anchorPoints) == 1 {
		anchorBuf = geo.BufferPointRound(anchorPoints[0], bufferSize)
		haveAnchor = true
	} else if len(anchorPoints) > 1 {
		hull := geo.ConvexHull(anchorPoints)
		anchorBuf = geo.BufferRound(orb.Polygon{hull}, bufferSize)
		haveAnchor = true
	}

	switch {
	case havePlatform && haveAnchor:
		return geo.UnionApprox(platformBuf, anchorBuf)
	case havePlatform:
		return platformBuf
	case haveAnchor:
		return anchorBuf
	default:
		return orb.Polygon{}
	}
}
