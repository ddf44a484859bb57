package overpass

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// rawResult mirrors the Overpass-API JSON response shape: a flat list of
// elements distinguished by their "type" field, plus optional remarks
// (partial-failure notices the service emits alongside a 200 response).
type rawResult struct {
	Elements []rawElement `json:"elements"`
	Remarks  string       `json:"remarks"`
}

type rawElement struct {
	Type    string            `json:"type"`
	ID      int64             `json:"id"`
	Lat     float64           `json:"lat"`
	Lon     float64           `json:"lon"`
	Tags    map[string]string `json:"tags"`
	Nodes   []int64           `json:"nodes"`
	Members []rawMember       `json:"members"`
}

type rawMember struct {
	Type string `json:"type"`
	Ref  int64  `json:"ref"`
	Role string `json:"role"`
}

// Decode turns a raw query-service JSON body into the three typed
// sequences the object model exposes. Way node references are resolved
// against the node population of the same response; a way referencing a
// node id absent from the response keeps a zero-value placeholder point
// and gains a diagnostic warning rather than failing the whole decode.
func Decode(body []byte) (nodes []*model.Node, ways []*model.Way, rels []*model.Relation, err error) {
	var raw rawResult
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, nil, fmt.Errorf("overpass: decoding response: %w", err)
	}

	nodeByID := make(map[int64]*model.Node)
	var rawWays []rawElement

	for _, el := range raw.Elements {
		switch el.Type {
		case "node":
			n := &model.Node{ID: el.ID, Tags: model.TagMap(el.Tags), Lon: el.Lon, Lat: el.Lat}
			if n.Tags == nil {
				n.Tags = model.TagMap{}
			}
			nodes = append(nodes, n)
			nodeByID[n.ID] = n
		case "way":
			rawWays = append(rawWays, el)
		case "relation":
			r := &model.Relation{ID: el.ID, Tags: model.TagMap(el.Tags)}
			if r.Tags == nil {
				r.Tags = model.TagMap{}
			}
			for _, m := range el.Members {
				r.Members = append(r.Members, model.RelMember{
					Kind: memberKind(m.Type),
					ID:   m.Ref,
					Role: m.Role,
				})
			}
			rels = append(rels, r)
		}
	}

	for _, el := range rawWays {
		w := &model.Way{ID: el.ID, Tags: model.TagMap(el.Tags), NodeIDs: el.Nodes}
		if w.Tags == nil {
			w.Tags = model.TagMap{}
		}
		w.NodeRefs = make([]orb.Point, len(el.Nodes))
		for i, nid := range el.Nodes {
			if n, ok := nodeByID[nid]; ok {
				w.NodeRefs[i] = orb.Point{n.Lon, n.Lat}
			} else {
				w.Warn(fmt.Sprintf("way references unresolved node %d", nid))
			}
		}
		ways = append(ways, w)
	}

	if raw.Remarks != "" {
		for _, n := range nodes {
			n.Comment("query service remark: " + raw.Remarks)
		}
	}

	return nodes, ways, rels, nil
}

func memberKind(t string) model.ObjectKind {
	switch t {
	case "way":
		return model.KindWay
	case "relation":
		return model.KindRelation
	default:
		return model.KindNode
	}
}
