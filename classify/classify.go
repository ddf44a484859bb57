// Package classify implements §4.2: sorting raw nodes and areas into the
// candidate role bins (stopo, pole, platform, station) plus the dubious
// bin, based purely on tags.
package classify

import (
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// Bins holds the five candidate populations produced by Classify. A node
// may be keyed into more than one of Stopos/Poles/Stations simultaneously
// (the "dynamic duck typing of bins" design of SPEC_FULL.md §9).
type Bins struct {
	Stopos   map[int64]*model.StopPosition
	Poles    map[int64]*model.Pole
	Platforms map[int64]*model.Platform
	Stations []*model.Station
	Dubious  []*model.DubiousObject
}

func newBins() *Bins {
	return &Bins{
		Stopos:    make(map[int64]*model.StopPosition),
		Poles:     make(map[int64]*model.Pole),
		Platforms: make(map[int64]*model.Platform),
	}
}

// listenedNodeKeys are the tag keys the classifier inspects; a node
// carrying one of these but matching no predicate below becomes dubious.
var listenedNodeKeys = []string{
	"public_transport", "highway", "amenity", "railway", "aerialway",
}

func isStopoNode(t model.TagMap) bool {
	if t.HasTag("public_transport", "stop_position") {
		return true
	}
	if t.HasTag("highway", "bus_stop") && !t.HasTag("public_transport", "platform") {
		return true
	}
	if t.HasAny("amenity", "bus_stop", "ferry_terminal") {
		return true
	}
	if t.HasTag("railway", "stop") {
		return true
	}
	if t.HasTag("railway", "tram_stop") && !t.HasAny("public_transport", "platform", "station") {
		return true
	}
	if t.HasTag("aerialway", "station") {
		return true
	}
	return false
}

func isPoleNode(t model.TagMap) bool {
	if t.HasTag("public_transport", "platform") {
		return true
	}
	if t.HasTag("highway", "bus_stop") && !t.HasTag("public_transport", "stop_position") {
		return true
	}
	if t.HasTag("amenity", "bus_stop") {
		return true
	}
	if t.HasTag("highway", "platform") {
		return true
	}
	if t.HasTag("railway", "platform") {
		return true
	}
	return false
}

func isStationNode(t model.TagMap) bool {
	if t.HasTag("public_transport", "station") {
		return true
	}
	if t.HasTag("amenity", "bus_station") {
		return true
	}
	if t.HasAny("railway", "station", "halt") {
		return true
	}
	return false
}

func isPlafoArea(t model.TagMap) bool {
	return t.HasTag("public_transport", "platform") || t.HasTag("highway", "platform") || t.HasTag("railway", "platform")
}

func isStationArea(t model.TagMap) bool {
	return isStationNode(t)
}

func hasAnyListenedKey(t model.TagMap) bool {
	for _, k := range listenedNodeKeys {
		if t.Has(k) {
			return true
		}
	}
	return false
}

// Classify sorts raw nodes and areas into the five candidate bins.
func Classify(nodes []*model.Node, areas []*model.Area) *Bins {
	bins := newBins()

	for _, n := range nodes {
		if len(n.Tags) == 0 {
			continue
		}
		matched := false

		if isStopoNode(n.Tags) {
			bins.Stopos[n.ID] = &model.StopPosition{NodeID: n.ID, Node: n, Geometry: n.Point()}
			matched = true
		}
		if isPoleNode(n.Tags) {
			bins.Poles[n.ID] = &model.Pole{NodeID: n.ID, Node: n, Geometry: n.Point()}
			matched = true
		}
		if isStationNode(n.Tags) {
			bins.Stations = append(bins.Stations, &model.Station{ID: n.ID, Kind: model.KindNode, Geometry: n.Point(), Tags: n.Tags})
			matched = true
		}

		if !matched && hasAnyListenedKey(n.Tags) {
			n.Warn("object carries transit-related tags but matched no classifier rule")
			bins.Dubious = append(bins.Dubious, &model.DubiousObject{
				ID: n.ID, Kind: model.KindNode, Tags: n.Tags, Geometry: n.Point(),
				Reason: "unclassifiable node with listened tags",
			})
		}
	}

	for _, a := range areas {
		if len(a.Tags) == 0 {
			continue
		}
		matched := false
		if isPlafoArea(a.Tags) {
			bins.Platforms[a.ID] = &model.Platform{AreaID: a.ID, Area: a, Geometry: a.Geometry}
			matched = true
		}
		if isStationArea(a.Tags) {
			bins.Stations = append(bins.Stations, &model.Station{ID: a.ID, Kind: a.Source, Geometry: a.Geometry, Tags: a.Tags})
			matched = true
		}
		if !matched && hasAnyListenedKey(a.Tags) {
			a.Warn("area carries transit-related tags but matched no classifier rule")
			bins.Dubious = append(bins.Dubious, &model.DubiousObject{
				ID: a.ID, Kind: a.Source, Tags: a.Tags, Geometry: a.Geometry,
				Reason: "unclassifiable area with listened tags",
			})
		}
	}

	return bins
}
