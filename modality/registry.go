package modality

import "github.com/theoremus-urban-solutions/ptstop/model"

// ModalityRule pairs one modality with its tag predicate, track family,
// and track-tag matcher. Shaped after this codebase's rule-registry
// pattern (code + category + predicate), repurposed from NetEX validation
// rule codes to transport modalities so operators can inspect or filter
// modalities by family the same way the original registry filtered
// validation rules by category.
type ModalityRule struct {
	Modality  model.Modality
	Family    model.TrackFamily
	IsFunc    IsFunc
	TrackFunc func(tags model.TagMap) bool
}

// ModalityRegistry is the static table of all eleven modality rules.
type ModalityRegistry struct {
	rules []ModalityRule
}

// NewModalityRegistry builds the complete, fixed modality rule set.
func NewModalityRegistry() *ModalityRegistry {
	return &ModalityRegistry{rules: []ModalityRule{
		{model.Bus, model.FamilyRoad, isBus, trackBus},
		{model.Trolleybus, model.FamilyRoad, isTrolleybus, trackTrolleybus},
		{model.ShareTaxi, model.FamilyRoad, isShareTaxi, trackShareTaxi},
		{model.Tram, model.FamilyRailLight, isTram, trackTram},
		{model.LightRail, model.FamilyRailLight, isLightRail, trackLightRail},
		{model.Train, model.FamilyRailHeavy, isTrain, trackTrain},
		{model.Monorail, model.FamilyRailLight, isMonorail, trackMonorail},
		{model.Subway, model.FamilyRailHeavy, isSubway, trackSubway},
		{model.Funicular, model.FamilyCable, isFunicular, trackFunicular},
		{model.Ferry, model.FamilyWater, isFerry, trackFerry},
		{model.Aerialway, model.FamilyAir, isAerialway, trackAerialway},
	}}
}

// Rules returns every registered modality rule.
func (r *ModalityRegistry) Rules() []ModalityRule {
	return r.rules
}

// ByFamily returns every rule belonging to the given track family.
func (r *ModalityRegistry) ByFamily(family model.TrackFamily) []ModalityRule {
	var out []ModalityRule
	for _, rule := range r.rules {
		if rule.Family == family {
			out = append(out, rule)
		}
	}
	return out
}

// ByModality returns the rule for a specific modality, if registered.
func (r *ModalityRegistry) ByModality(m model.Modality) (ModalityRule, bool) {
	for _, rule := range r.rules {
		if rule.Modality == m {
			return rule, true
		}
	}
	return ModalityRule{}, false
}
