// Package testutil provides fixture builders for the object model, keyed
// the way tests across this codebase construct nodes/ways/areas without
// repeating raw struct literals.
package testutil

import (
	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// Test region constants used across package test files.
const (
	TestRegionCode = "TEST"
	TestAdminLevel = 7
)

// NodeBuilder constructs a *model.Node fluently for test fixtures.
type NodeBuilder struct {
	node *model.Node
}

// NewNode starts a NodeBuilder with the given id and position.
func NewNode(id int64, lon, lat float64) *NodeBuilder {
	return &NodeBuilder{node: &model.Node{ID: id, Lon: lon, Lat: lat, Tags: model.TagMap{}}}
}

// Tag sets a single tag key/value.
func (b *NodeBuilder) Tag(key, value string) *NodeBuilder {
	b.node.Tags[key] = value
	return b
}

// Build returns the constructed node.
func (b *NodeBuilder) Build() *model.Node {
	return b.node
}

// WayBuilder constructs a *model.Way fluently, resolving NodeRefs from the
// supplied node positions as it goes.
type WayBuilder struct {
	way *model.Way
}

// NewWay starts a WayBuilder with the given id.
func NewWay(id int64) *WayBuilder {
	return &WayBuilder{way: &model.Way{ID: id, Tags: model.TagMap{}}}
}

// Tag sets a single tag key/value.
func (b *WayBuilder) Tag(key, value string) *WayBuilder {
	b.way.Tags[key] = value
	return b
}

// Node appends a node reference by id and position.
func (b *WayBuilder) Node(id int64, lon, lat float64) *WayBuilder {
	b.way.NodeIDs = append(b.way.NodeIDs, id)
	b.way.NodeRefs = append(b.way.NodeRefs, orb.Point{lon, lat})
	return b
}

// Close repeats the way's first node to form a closed ring.
func (b *WayBuilder) Close() *WayBuilder {
	if len(b.way.NodeIDs) == 0 {
		return b
	}
	b.way.NodeIDs = append(b.way.NodeIDs, b.way.NodeIDs[0])
	b.way.NodeRefs = append(b.way.NodeRefs, b.way.NodeRefs[0])
	return b
}

// Build returns the constructed way.
func (b *WayBuilder) Build() *model.Way {
	return b.way
}

// RelationBuilder constructs a *model.Relation fluently.
type RelationBuilder struct {
	rel *model.Relation
}

// NewRelation starts a RelationBuilder with the given id.
func NewRelation(id int64) *RelationBuilder {
	return &RelationBuilder{rel: &model.Relation{ID: id, Tags: model.TagMap{}}}
}

// Tag sets a single tag key/value.
func (b *RelationBuilder) Tag(key, value string) *RelationBuilder {
	b.rel.Tags[key] = value
	return b
}

// Member appends a relation member.
func (b *RelationBuilder) Member(kind model.ObjectKind, id int64, role string) *RelationBuilder {
	b.rel.Members = append(b.rel.Members, model.RelMember{Kind: kind, ID: id, Role: role})
	return b
}

// Build returns the constructed relation.
func (b *RelationBuilder) Build() *model.Relation {
	return b.rel
}

// BusStopNode builds a minimal tagged bus stop_position node.
func BusStopNode(id int64, lon, lat float64) *model.Node {
	return NewNode(id, lon, lat).Tag("public_transport", "stop_position").Tag("bus", "yes").Build()
}

// BusPoleNode builds a minimal tagged bus platform (pole) node.
func BusPoleNode(id int64, lon, lat float64) *model.Node {
	return NewNode(id, lon, lat).Tag("public_transport", "platform").Tag("bus", "yes").Build()
}

// RectanglePlatformWay builds a closed rectangular platform way centered on
// (lon, lat) with the given half-width/half-height in degrees.
func RectanglePlatformWay(id, baseNodeID int64, lon, lat, halfW, halfH float64) *model.Way {
	return NewWay(id).
		Tag("public_transport", "platform").
		Tag("bus", "yes").
		Node(baseNodeID, lon-halfW, lat-halfH).
		Node(baseNodeID+1, lon+halfW, lat-halfH).
		Node(baseNodeID+2, lon+halfW, lat+halfH).
		Node(baseNodeID+3, lon-halfW, lat+halfH).
		Close().
		Build()
}

// BusTrackWay builds an untagged-role, bus-tagged highway way connecting
// the given node ids in sequence, for track-fetch fixtures.
func BusTrackWay(id int64, nodeIDs []int64, positions []orb.Point) *model.Way {
	w := NewWay(id).Tag("highway", "secondary").Tag("bus", "yes")
	for i, nid := range nodeIDs {
		w.Node(nid, positions[i][0], positions[i][1])
	}
	return w.Build()
}
