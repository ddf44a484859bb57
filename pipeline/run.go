// Package pipeline orchestrates one region's run through every phase of
// the stop reconstruction pipeline, and the manifest-driven concurrent
// driver over many regions.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/annotate"
	"github.com/theoremus-urban-solutions/ptstop/classify"
	pterrors "github.com/theoremus-urban-solutions/ptstop/errors"
	"github.com/theoremus-urban-solutions/ptstop/export"
	"github.com/theoremus-urban-solutions/ptstop/geo"
	"github.com/theoremus-urban-solutions/ptstop/logging"
	"github.com/theoremus-urban-solutions/ptstop/match"
	"github.com/theoremus-urban-solutions/ptstop/modality"
	"github.com/theoremus-urban-solutions/ptstop/model"
	"github.com/theoremus-urban-solutions/ptstop/overpass"
	"github.com/theoremus-urban-solutions/ptstop/plole"
	"github.com/theoremus-urban-solutions/ptstop/stop"
)

// Run executes the full pipeline for one region and returns its Result.
// A region-level failure (query timeout, HTTP failure, invalid area
// source) aborts the run and is reported via Result.Err rather than a
// returned error, so a manifest driver can move on to the next region
// without special-casing this call.
func Run(ctx context.Context, client *overpass.Client, region *Region, opts *Options) *Result {
	start := time.Now()
	log := opts.GetLogger().WithRegion(region.Code)
	log.RegionStart(region.Code)

	stops, dubious, err := runPhases(ctx, client, region, opts, log)
	elapsed := time.Since(start)

	if err != nil {
		log.RegionFailed(region.Code, err)
		return &Result{RegionCode: region.Code, ProcessingTime: elapsed, CacheStats: client.Stats(), Err: err}
	}

	log.RegionComplete(region.Code, elapsed, len(stops))
	return &Result{
		RegionCode:     region.Code,
		Stops:          stops,
		Dubious:        dubious,
		ProcessingTime: elapsed,
		CacheStats:     client.Stats(),
	}
}

func runPhases(ctx context.Context, client *overpass.Client, region *Region, opts *Options, log *logging.Logger) ([]*model.Stop, []*model.DubiousObject, error) {
	phaseStart := time.Now()

	nodes, ways, rels, err := client.FetchObjects(ctx, region.Code, opts.ObjectsQuery, opts.Overpass.Timeout)
	if err != nil {
		return nil, nil, pterrors.NewRegionError(region.Code, "ingest", err)
	}
	log.PhaseComplete(region.Code, "ingest", time.Since(phaseStart))

	areas, areaDubious := buildAreas(ways, rels)

	phaseStart = time.Now()
	bins := classify.Classify(nodes, areas)
	log.PhaseComplete(region.Code, "classify", time.Since(phaseStart))

	inf := modality.NewInference()
	inf.SealPlatformsAndStations(bins)

	nodeIDs := make([]int64, 0, len(bins.Stopos)+len(bins.Poles))
	for id := range bins.Stopos {
		nodeIDs = append(nodeIDs, id)
	}
	for id := range bins.Poles {
		nodeIDs = append(nodeIDs, id)
	}

	phaseStart = time.Now()
	trackWays, err := client.FetchTracks(ctx, region.Code, opts.TracksQuery, nodeIDs, opts.Overpass.Timeout)
	if err != nil {
		return nil, nil, pterrors.NewRegionError(region.Code, "track-fetch", err)
	}
	log.PhaseComplete(region.Code, "track-fetch", time.Since(phaseStart))

	phaseStart = time.Now()
	modalityDubious := inf.SealStoposAndPoles(bins, trackWays)
	log.PhaseComplete(region.Code, "modality-inference", time.Since(phaseStart))

	origin, ok := geo.OriginFromCRS(region.MetersCRS)
	if !ok {
		origin = regionCentroid(nodes)
	}
	proj := geo.NewProjection(origin)
	projectRegion(bins, proj, opts.HalfPlafoWidth, opts.StationRadius)

	phaseStart = time.Now()
	plafoToPoles := match.GetNearby(plafoObjects(bins), poleObjects(bins), opts.PlafoPoleDist, match.PoleToPlafoFilter)
	stopoToPole := match.GetNearby(poleObjects(bins), stopoObjects(bins), opts.PoleStopoDist, match.StopoToPloleFilter)
	stopoToPlafo := match.GetNearby(plafoObjects(bins), stopoObjects(bins), opts.PlafoStopoDist, match.StopoToPloleFilter)
	log.PhaseComplete(region.Code, "spatial-match", time.Since(phaseStart))

	phaseStart = time.Now()
	ploles := plole.Assemble(bins, plafoToPoles, stopoToPole, stopoToPlafo)
	log.PhaseComplete(region.Code, "plole-assemble", time.Since(phaseStart))

	phaseStart = time.Now()
	stops := stop.Assemble(bins, ploles, opts.StopBufferSize)
	var diag model.Diagnostics
	stop.CheckInvariants(stops, &diag)
	for _, w := range diag.Warnings {
		log.Warn("invariant check", "region", region.Code, "warning", w)
	}
	log.PhaseComplete(region.Code, "stop-assemble", time.Since(phaseStart))

	ploleByID := make(map[int64]*model.Plole, len(ploles))
	for _, pl := range ploles {
		ploleByID[pl.ID] = pl
	}

	phaseStart = time.Now()
	annotate.Annotate(stops, bins, ploleByID)
	log.PhaseComplete(region.Code, "annotate", time.Since(phaseStart))

	for _, st := range stops {
		st.Geometry = geo.ProjectGeometry(st.Geometry, proj.ToGeographic)
		st.RegionCode = region.Code
	}

	dubious := append(bins.Dubious, areaDubious...)
	dubious = append(dubious, modalityDubious...)
	for _, d := range dubious {
		d.Geometry = geo.ProjectGeometry(d.Geometry, proj.ToGeographic)
	}

	phaseStart = time.Now()
	if err := writeExport(region, opts, bins, stops, dubious, ploles, proj); err != nil {
		return nil, nil, pterrors.NewRegionError(region.Code, "export", err)
	}
	log.PhaseComplete(region.Code, "export", time.Since(phaseStart))

	return stops, dubious, nil
}

func writeExport(region *Region, opts *Options, bins *classify.Bins, stops []*model.Stop, dubious []*model.DubiousObject, ploles []*model.Plole, proj *geo.Projection) error {
	writer, err := export.NewGeoJSONDirWriter(opts.ExportPath, opts.PlolesPath)
	if err != nil {
		return err
	}

	if err := writer.WriteLayer(region.Code+"_stopos", export.StoposLayer(bins, proj)); err != nil {
		return &pterrors.ExportIOFailure{Layer: "stopos", Err: err}
	}
	if err := writer.WriteLayer(region.Code+"_poles", export.PolesLayer(bins, proj)); err != nil {
		return &pterrors.ExportIOFailure{Layer: "poles", Err: err}
	}
	if err := writer.WriteLayer(region.Code+"_plafos", export.PlafosLayer(bins, proj)); err != nil {
		return &pterrors.ExportIOFailure{Layer: "plafos", Err: err}
	}
	if err := writer.WriteLayer(region.Code+"_stops", export.StopsLayer(stops, proj)); err != nil {
		return &pterrors.ExportIOFailure{Layer: "stops", Err: err}
	}
	if err := writer.WriteLayer(region.Code+"_nstops", export.StopCentroidsLayer(stops, proj)); err != nil {
		return &pterrors.ExportIOFailure{Layer: "nstops", Err: err}
	}
	if err := writer.WriteLayer(region.Code+"_dubobs", export.DubiousLayer(dubious, proj)); err != nil {
		return &pterrors.ExportIOFailure{Layer: "dubobs", Err: err}
	}

	for _, pl := range ploles {
		rec := export.BuildProvenance(pl)
		if err := export.WriteProvenance(writer, rec); err != nil {
			return &pterrors.ExportIOFailure{Layer: fmt.Sprintf("plole %d", pl.ID), Err: err}
		}
	}

	report := export.BuildDubiousReport(dubious)
	if err := export.WriteDubiousReport(writer, report); err != nil {
		return &pterrors.ExportIOFailure{Layer: "dubious_report", Err: err}
	}

	return nil
}

// buildAreas derives §4.1's Area population from every way/relation the
// objects query returned, skipping relations that fail the multipolygon
// shape check (recorded as dubious rather than aborting the region).
func buildAreas(ways []*model.Way, rels []*model.Relation) ([]*model.Area, []*model.DubiousObject) {
	wayByID := make(map[int64]*model.Way, len(ways))
	for _, w := range ways {
		wayByID[w.ID] = w
	}

	var areas []*model.Area
	var dubious []*model.DubiousObject

	for _, w := range ways {
		if len(w.Tags) == 0 {
			continue
		}
		areas = append(areas, model.NewAreaFromWay(w))
	}

	for _, r := range rels {
		if len(r.Tags) == 0 {
			continue
		}
		area, err := model.NewAreaFromRelation(r, wayByID)
		if err != nil {
			dubious = append(dubious, &model.DubiousObject{
				ID: r.ID, Kind: model.KindRelation, Tags: r.Tags,
				Reason: err.Error(),
			})
			continue
		}
		areas = append(areas, area)
	}

	return areas, dubious
}

// regionCentroid falls back to the average node position when a
// region's meters_crs manifest entry cannot be parsed.
func regionCentroid(nodes []*model.Node) orb.Point {
	if len(nodes) == 0 {
		return orb.Point{}
	}
	var sx, sy float64
	for _, n := range nodes {
		sx += n.Lon
		sy += n.Lat
	}
	return orb.Point{sx / float64(len(nodes)), sy / float64(len(nodes))}
}

// projectRegion reprojects every classified object's geometry into the
// region's metric CRS in place, ahead of the buffering/matching phases
// that require it. Line-sourced platforms are buffered to a polygon with
// flat caps (half_plafo_width) and node/line stations are buffered with
// round caps (station_radius), both per §4.3/§4.7 so that downstream area
// ranking, matching, and containment checks see real polygons rather than
// degenerate lines/points.
func projectRegion(bins *classify.Bins, proj *geo.Projection, halfPlafoWidth, stationRadius float64) {
	for _, sp := range bins.Stopos {
		sp.Geometry = proj.ToMetric(sp.Geometry)
	}
	for _, p := range bins.Poles {
		p.Geometry = proj.ToMetric(p.Geometry)
	}
	for _, p := range bins.Platforms {
		p.Area.Geometry = geo.ProjectGeometry(p.Area.Geometry, proj.ToMetric)
		if p.Area.FromLine {
			p.Area.Geometry = geo.BufferLineFlat(p.Area.Geometry.(orb.LineString), halfPlafoWidth)
		}
		p.Geometry = p.Area.Geometry
	}
	for _, s := range bins.Stations {
		s.Geometry = geo.ProjectGeometry(s.Geometry, proj.ToMetric)
		switch g := s.Geometry.(type) {
		case orb.Point:
			s.Geometry = geo.BufferPointRound(g, stationRadius)
		case orb.LineString:
			s.Geometry = geo.BufferRound(g, stationRadius)
		}
	}
}
