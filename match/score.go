// Package match implements §4.4's spatial matcher: buffered neighborhood
// queries over the R-tree index, modality-compatibility filtering, and
// the seven-component tag scorer with its distance tiebreaker.
package match

import (
	"strings"

	"github.com/theoremus-urban-solutions/ptstop/model"
)

// scoreWeights are the composite-score coefficients of §4.4 step 5, in
// the fixed component order: IFOPT, ref, local_ref, ref_name, name,
// layer, level.
var scoreWeights = [7]float64{10, 2, 2, 1, 1, 1, 2}

// TagScore computes the seven raw {-1,0,+1} components and the weighted
// composite for the tag-match between an anchor and a candidate.
func TagScore(anchor, candidate model.TagMap) (components [7]int, composite float64) {
	components[0] = substringComponent(anchor.Get("ref:IFOPT"), candidate.Get("ref:IFOPT"))
	components[1] = multiValueComponent(anchor, candidate, "ref")
	components[2] = multiValueComponent(anchor, candidate, "local_ref")
	components[3] = substringComponent(anchor.Get("ref_name"), candidate.Get("ref_name"))
	components[4] = substringComponent(anchor.Get("name"), candidate.Get("name"))
	components[5] = setComponent(anchor, candidate, "layer")
	components[6] = setComponent(anchor, candidate, "level")

	for i, c := range components {
		composite += float64(c) * scoreWeights[i]
	}
	return components, composite
}

// substringComponent implements the ref:IFOPT/ref_name/name matching
// rule: +1 if both sides are non-empty and either contains the other,
// -1 if both are non-empty and neither contains the other, 0 if either
// side is absent (no information to compare).
func substringComponent(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 1
	}
	return -1
}

// multiValueComponent implements the exact multi-value matching rule for
// ref/local_ref: +1 if the two value sets share any atom, -1 if both are
// non-empty and disjoint, 0 if either side is absent.
func multiValueComponent(anchor, candidate model.TagMap, key string) int {
	av, bv := anchor.Values(key), candidate.Values(key)
	if len(av) == 0 || len(bv) == 0 {
		return 0
	}
	for _, a := range av {
		for _, b := range bv {
			if a == b {
				return 1
			}
		}
	}
	return -1
}

// setComponent implements the layer/level matching rule: both sides
// default to "0" when absent, then the values are compared as sets
// (shared atom -> +1, disjoint -> -1).
func setComponent(anchor, candidate model.TagMap, key string) int {
	av, bv := anchor.Values(key), candidate.Values(key)
	if len(av) == 0 {
		av = []string{"0"}
	}
	if len(bv) == 0 {
		bv = []string{"0"}
	}
	for _, a := range av {
		for _, b := range bv {
			if a == b {
				return 1
			}
		}
	}
	return -1
}
