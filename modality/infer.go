package modality

import (
	"fmt"

	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// Inference seals tag_mods/tag_maybe_mods/track_mods/mods on every
// classified object, per §4.3. TrackWays must already be the result of
// the second (track-fetch) query, each way's geometry resolved.
type Inference struct {
	registry *ModalityRegistry
}

// NewInference builds an Inference bound to the full modality registry.
func NewInference() *Inference {
	return &Inference{registry: NewModalityRegistry()}
}

// Registry exposes the underlying modality rule table.
func (inf *Inference) Registry() *ModalityRegistry {
	return inf.registry
}

func (inf *Inference) tagMods(tags model.TagMap) (definite, maybe model.ModSet) {
	definite = model.NewModSet()
	maybe = model.NewModSet()
	for _, rule := range inf.registry.rules {
		switch rule.IsFunc(tags) {
		case Definite:
			definite.Add(rule.Modality)
		case Possible:
			maybe.Add(rule.Modality)
		}
	}
	return definite, maybe
}

// SealPlatformsAndStations computes mods/maybe_mods for plafos and
// stations from tag inference alone — they have no track context.
func (inf *Inference) SealPlatformsAndStations(bins *classify.Bins) {
	for _, p := range bins.Platforms {
		p.Mods, p.MaybeMods = inf.tagMods(p.Area.Tags)
	}
	for _, s := range bins.Stations {
		s.Mods, _ = inf.tagMods(s.Tags)
	}
}

// neverTrackOnly are modalities never inferred from track alone when a
// stopo carries no tag-derived modality information.
var neverTrackOnly = model.NewModSet(model.Trolleybus, model.ShareTaxi)

// SealStoposAndPoles seals tag_mods for every stopo and pole, merges in
// track modalities from trackWays (the §4.3 second query result, with
// layer/level import), and applies the reclassification/dubious rules.
// Returns the dubious objects generated during this phase.
func (inf *Inference) SealStoposAndPoles(bins *classify.Bins, trackWays []*model.Way) []*model.DubiousObject {
	for _, s := range bins.Stopos {
		s.TagMods, s.TagMaybeMods = inf.tagMods(s.Node.Tags)
	}
	for _, p := range bins.Poles {
		p.TagMods, p.TagMaybeMods = inf.tagMods(p.Node.Tags)
	}

	inf.mergeTrackMods(bins, trackWays)

	var dubious []*model.DubiousObject

	for id, s := range bins.Stopos {
		_, isAlsoPole := bins.Poles[id]

		if s.TrackMods.Empty() {
			if isAlsoPole {
				delete(bins.Stopos, id)
				continue
			}
			s.Node.Warn("stop position has no adjacent track; moved to dubious")
			dubious = append(dubious, &model.DubiousObject{
				ID: id, Kind: model.KindNode, Tags: s.Node.Tags, Geometry: s.Geometry,
				Reason: "stop position with empty track_mods",
			})
			delete(bins.Stopos, id)
			continue
		}

		tagUnion := s.TagMods.Union(s.TagMaybeMods)
		if tagUnion.Empty() {
			s.Mods = s.TrackMods.Diff(neverTrackOnly)
		} else {
			s.Mods = tagUnion.Intersect(s.TrackMods)
			if s.Mods.Empty() {
				s.Node.Warn("stop position tag modalities disjoint from track modalities; moved to dubious")
				dubious = append(dubious, &model.DubiousObject{
					ID: id, Kind: model.KindNode, Tags: s.Node.Tags, Geometry: s.Geometry,
					Reason: "stop position tag/track modality mismatch",
				})
				delete(bins.Stopos, id)
			}
		}
	}

	for id, p := range bins.Poles {
		overlap := p.TagMods.Intersect(p.TrackMods)
		if !overlap.Empty() {
			p.Node.Comment(fmt.Sprintf("pole modalities %v also present on adjacent track; dropped", overlap.Sorted()))
		}
		p.Mods = p.TagMods.Diff(p.TrackMods)
		p.MaybeMods = p.TagMaybeMods.Diff(p.TrackMods)

		if p.Mods.Union(p.MaybeMods).Empty() {
			_, isAlsoStopo := bins.Stopos[id]
			if isAlsoStopo {
				delete(bins.Poles, id)
				continue
			}
			p.Node.Warn("pole has no surviving modalities; moved to dubious")
			dubious = append(dubious, &model.DubiousObject{
				ID: id, Kind: model.KindNode, Tags: p.Node.Tags, Geometry: p.Geometry,
				Reason: "pole with empty mods/maybe_mods",
			})
			delete(bins.Poles, id)
		}
	}

	for id := range bins.Stopos {
		if _, ok := bins.Poles[id]; ok {
			bins.Stopos[id].Node.Warn("node classified as both stop position and pole; kept as stop position only")
			delete(bins.Poles, id)
		}
	}

	return dubious
}

// mergeTrackMods computes each track way's modality set and unions it
// into every stopo/pole the way references, importing layer/level tags
// along the way (semicolon-joining distinct values and flagging
// multiple_values).
func (inf *Inference) mergeTrackMods(bins *classify.Bins, trackWays []*model.Way) {
	for _, way := range trackWays {
		wayMods := inf.registry.TrackModsForWay(way.Tags)
		if wayMods.Empty() {
			continue
		}
		for _, nodeID := range way.NodeIDs {
			if s, ok := bins.Stopos[nodeID]; ok {
				s.TrackMods = s.TrackMods.Union(wayMods)
				importLayerLevel(s.Node.Tags, way.Tags)
			}
			if p, ok := bins.Poles[nodeID]; ok {
				p.TrackMods = p.TrackMods.Union(wayMods)
				importLayerLevel(p.Node.Tags, way.Tags)
			}
		}
	}
}

func importLayerLevel(dst, src model.TagMap) {
	for _, key := range []string{"layer", "level"} {
		v := src.Get(key)
		if v == "" {
			continue
		}
		if dst.AddValue(key, v) {
			dst["multiple_values"] = "yes"
		}
	}
}
