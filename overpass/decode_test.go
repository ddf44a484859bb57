package overpass

import (
	"strings"
	"testing"
	"time"
)

func TestDecode_NodesWaysRelations(t *testing.T) {
	body := []byte(`{
		"elements": [
			{"type":"node","id":1,"lat":59.9,"lon":10.7,"tags":{"highway":"bus_stop"}},
			{"type":"node","id":2,"lat":59.91,"lon":10.71,"tags":{}},
			{"type":"way","id":10,"nodes":[1,2],"tags":{"public_transport":"platform"}},
			{"type":"relation","id":100,"tags":{"type":"multipolygon"},"members":[{"type":"way","ref":10,"role":"outer"}]}
		]
	}`)

	nodes, ways, rels, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(nodes) != 2 || len(ways) != 1 || len(rels) != 1 {
		t.Fatalf("expected 2 nodes, 1 way, 1 relation, got %d/%d/%d", len(nodes), len(ways), len(rels))
	}
	if ways[0].NodeRefs[0][0] != 10.7 || ways[0].NodeRefs[0][1] != 59.9 {
		t.Errorf("expected way's first node ref resolved to node 1's position, got %v", ways[0].NodeRefs[0])
	}
	if rels[0].Members[0].ID != 10 || rels[0].Members[0].Role != "outer" {
		t.Errorf("expected relation member resolved, got %+v", rels[0].Members[0])
	}
}

func TestDecode_UnresolvedWayNodeGetsWarning(t *testing.T) {
	body := []byte(`{
		"elements": [
			{"type":"way","id":10,"nodes":[999],"tags":{"highway":"platform"}}
		]
	}`)

	_, ways, _, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(ways[0].Warnings) != 1 {
		t.Errorf("expected a warning for the unresolved node reference, got %v", ways[0].Warnings)
	}
}

func TestDecode_RemarksAttachedAsComment(t *testing.T) {
	body := []byte(`{
		"elements": [{"type":"node","id":1,"lat":1,"lon":1,"tags":{"highway":"bus_stop"}}],
		"remarks": "runtime error: something"
	}`)
	nodes, _, _, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(nodes[0].Comments) != 1 {
		t.Errorf("expected remark comment attached to every node, got %v", nodes[0].Comments)
	}
}

func TestBuildQuery_SubstitutesAreaAndTimeout(t *testing.T) {
	q := BuildQuery("node(area:{{area}});out;", 30*time.Second, "3600123")
	if !strings.Contains(q, "[timeout:30]") {
		t.Errorf("expected timeout directive in query, got %q", q)
	}
	if !strings.Contains(q, "3600123") {
		t.Errorf("expected area id substituted into query, got %q", q)
	}
}
