package modality

import "github.com/theoremus-urban-solutions/ptstop/model"

// roadHighwayValues lists the highway=* values a bus/trolleybus/share-taxi
// track may run on.
var roadHighwayValues = []string{
	"motorway", "trunk", "primary", "secondary", "tertiary",
	"unclassified", "residential", "living_street", "service", "track", "road",
}

var railHeavyValues = []string{"rail", "narrow_gauge", "preserved", "miniature"}

// roadConstructionValues lists the construction=* values that count as an
// under-construction road for track-modality purposes.
var roadConstructionValues = []string{
	"motorway", "trunk", "primary", "secondary", "tertiary",
	"unclassified", "residential", "living_street", "service", "track", "road",
}

func trackBus(t model.TagMap) bool {
	if t.HasTag("psv", "yes") {
		return true
	}
	if t.HasTag("highway", "construction") {
		return t.HasAny("construction", roadConstructionValues...)
	}
	return t.HasAny("highway", roadHighwayValues...)
}

func trackTrolleybus(t model.TagMap) bool {
	return t.HasTag("trolleybus", "yes") && trackBus(t)
}

func trackShareTaxi(t model.TagMap) bool {
	return t.HasTag("share_taxi", "yes") && trackBus(t)
}

func isRailConstruction(t model.TagMap, railValue string) bool {
	if !t.HasTag("highway", "construction") {
		return false
	}
	return t.HasTag("construction", railValue) || t.HasTag("construction", "rail")
}

func trackTram(t model.TagMap) bool {
	return t.HasTag("railway", "tram") || isRailConstruction(t, "tram")
}

func trackLightRail(t model.TagMap) bool {
	return t.HasTag("railway", "light_rail") || isRailConstruction(t, "light_rail")
}

func trackTrain(t model.TagMap) bool {
	if t.HasTag("railway", "construction") {
		return t.HasTag("construction", "rail")
	}
	if t.HasAny("railway", railHeavyValues...) {
		return true
	}
	return isRailConstruction(t, "rail")
}

func trackMonorail(t model.TagMap) bool {
	return t.HasTag("railway", "monorail") || isRailConstruction(t, "monorail")
}

func trackSubway(t model.TagMap) bool {
	return t.HasTag("railway", "subway") || isRailConstruction(t, "subway")
}

func trackFunicular(t model.TagMap) bool {
	return t.HasTag("railway", "funicular") || isRailConstruction(t, "funicular")
}

func trackFerry(t model.TagMap) bool {
	return t.HasTag("route", "ferry")
}

func trackAerialway(t model.TagMap) bool {
	return t.Has("aerialway")
}

// platformLikeKeys are the tag keys whose "platform" value suppresses the
// modality-flag fast path (bus=yes etc.) when computing a way's track
// modalities: a way tagged as a platform is not itself a track, so only
// genuine track-tag matches should count toward its track modalities.
func isPlatformLikeWay(t model.TagMap) bool {
	return t.HasTag("highway", "platform") || t.HasTag("railway", "platform") || t.HasTag("public_transport", "platform")
}

// TrackModsForWay computes the track modality set for a single way. When
// the way itself looks like a platform way, the is_func fast path is
// suppressed per §4.3 and only the track-tag table contributes.
func (r *ModalityRegistry) TrackModsForWay(tags model.TagMap) model.ModSet {
	out := model.NewModSet()
	suppressFastPath := isPlatformLikeWay(tags)
	for _, rule := range r.rules {
		if rule.TrackFunc(tags) {
			out.Add(rule.Modality)
			continue
		}
		if !suppressFastPath && rule.IsFunc(tags) == Definite {
			out.Add(rule.Modality)
		}
	}
	return out
}
