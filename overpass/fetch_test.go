package overpass

import (
	"strings"
	"testing"
)

func TestSubstituteIDs_JoinsCommaSeparated(t *testing.T) {
	got := substituteIDs("node(id:{{ids}});out;", []int64{1, 2, 3})
	if !strings.Contains(got, "1,2,3") {
		t.Errorf("expected comma-joined ids substituted, got %q", got)
	}
}

func TestSubstituteIDs_EmptyIDsLeavesPlaceholderBlank(t *testing.T) {
	got := substituteIDs("node(id:{{ids}});out;", nil)
	if !strings.Contains(got, "node(id:);out;") {
		t.Errorf("expected empty placeholder substitution, got %q", got)
	}
}
