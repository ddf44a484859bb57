// Package modality implements §4.3's modality inference: the eleven
// trivalent tag predicates, the track-tag lookup table used when
// augmenting stopos/poles with adjacent-track modalities, and the
// orchestration that seals each classified object's final mods/maybe_mods.
package modality

import "github.com/theoremus-urban-solutions/ptstop/model"

// Trivalent mirrors the is_func contract of §9: -1 excluded, 0 possible,
// +1 definite. Every predicate below is total (no missing terminal
// branch) — see the is_share_taxi resolution recorded in SPEC_FULL.md §9.
type Trivalent int8

const (
	Excluded Trivalent = -1
	Possible Trivalent = 0
	Definite Trivalent = 1
)

// IsFunc is the signature every modality predicate implements.
type IsFunc func(tags model.TagMap) Trivalent

func isBus(t model.TagMap) Trivalent {
	if t.HasAny("bus", "yes", "school") || t.HasTag("highway", "bus_stop") ||
		t.HasAny("amenity", "bus_stop", "bus_station") {
		return Definite
	}
	if t.HasTag("highway", "platform") || t.HasTag("public_transport", "platform") {
		return Possible
	}
	return Excluded
}

func isTrolleybus(t model.TagMap) Trivalent {
	if t.HasTag("trolleybus", "yes") {
		return Definite
	}
	if t.HasTag("highway", "platform") || t.HasTag("public_transport", "platform") {
		return Possible
	}
	return Excluded
}

func isShareTaxi(t model.TagMap) Trivalent {
	if t.HasTag("share_taxi", "yes") {
		return Definite
	}
	return Excluded
}

func isTram(t model.TagMap) Trivalent {
	if t.HasTag("tram", "yes") || t.HasTag("station", "tram") {
		return Definite
	}
	if t.HasAny("railway", "tram_stop", "station", "halt", "platform") ||
		t.HasTag("highway", "platform") || t.HasTag("public_transport", "platform") {
		return Possible
	}
	return Excluded
}

func isLightRail(t model.TagMap) Trivalent {
	if t.HasTag("light_rail", "yes") || t.HasTag("station", "light_rail") {
		return Definite
	}
	if t.HasAny("railway", "station", "halt", "platform") || t.HasTag("public_transport", "platform") {
		return Possible
	}
	return Excluded
}

func isTrain(t model.TagMap) Trivalent {
	if t.HasTag("train", "yes") || t.HasTag("station", "train") {
		return Definite
	}
	if t.HasAny("railway", "station", "halt", "platform") || t.HasTag("public_transport", "platform") {
		return Possible
	}
	return Excluded
}

func isMonorail(t model.TagMap) Trivalent {
	if t.HasTag("monorail", "yes") || t.HasTag("station", "monorail") {
		return Definite
	}
	if t.HasTag("railway", "platform") || t.HasTag("public_transport", "platform") {
		return Possible
	}
	return Excluded
}

func isSubway(t model.TagMap) Trivalent {
	if t.HasTag("subway", "yes") || t.HasTag("station", "subway") {
		return Definite
	}
	if t.HasAny("railway", "station", "halt", "platform") || t.HasTag("public_transport", "platform") {
		return Possible
	}
	return Excluded
}

func isFunicular(t model.TagMap) Trivalent {
	if t.HasTag("funicular", "yes") || t.HasTag("station", "funicular") {
		return Definite
	}
	if t.HasTag("railway", "platform") || t.HasTag("public_transport", "platform") {
		return Possible
	}
	return Excluded
}

func isFerry(t model.TagMap) Trivalent {
	if t.HasTag("ferry", "yes") || t.HasTag("amenity", "ferry_terminal") {
		return Definite
	}
	return Excluded
}

func isAerialway(t model.TagMap) Trivalent {
	if t.HasTag("aerialway", "station") {
		return Definite
	}
	if t.Has("aerialway") {
		return Possible
	}
	return Excluded
}
