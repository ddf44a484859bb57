package model

import (
	"strconv"

	"github.com/paulmach/orb"
)

// ObjectKind discriminates the three raw element kinds a query-service
// response can carry.
type ObjectKind int

const (
	KindNode ObjectKind = iota
	KindWay
	KindRelation
)

func (k ObjectKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindWay:
		return "way"
	case KindRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// Node is a point element: identity, tags, geographic position.
type Node struct {
	ID   int64
	Tags TagMap
	Lon  float64
	Lat  float64
	Diagnostics
}

// Point returns the node's geographic position as an orb.Point (lon, lat).
func (n *Node) Point() orb.Point {
	return orb.Point{n.Lon, n.Lat}
}

// Way is an ordered sequence of node references plus its own tags.
type Way struct {
	ID       int64
	Tags     TagMap
	NodeIDs  []int64
	NodeRefs []orb.Point // resolved geographic positions, parallel to NodeIDs
	Diagnostics
}

// Closed reports whether the way's node sequence forms a closed ring.
func (w *Way) Closed() bool {
	return len(w.NodeIDs) >= 4 && w.NodeIDs[0] == w.NodeIDs[len(w.NodeIDs)-1]
}

// LineString returns the way's geometry as an orb.LineString.
func (w *Way) LineString() orb.LineString {
	ls := make(orb.LineString, len(w.NodeRefs))
	copy(ls, w.NodeRefs)
	return ls
}

// RelMember is one member of a Relation: the kind and id of the referenced
// object plus its role string (e.g. "outer", "inner", "platform").
type RelMember struct {
	Kind ObjectKind
	ID   int64
	Role string
}

// Relation is a named collection of members, e.g. a multipolygon or a
// public_transport=stop_area grouping.
type Relation struct {
	ID      int64
	Tags    TagMap
	Members []RelMember
	Diagnostics
}

// ErrInvalidAreaSource is returned when an Area is built from a Relation
// that does not carry the multipolygon shape the object model expects.
type ErrInvalidAreaSource struct {
	RelationID int64
	Reason     string
}

func (e *ErrInvalidAreaSource) Error() string {
	return "invalid area source for relation " + strconv.FormatInt(e.RelationID, 10) + ": " + e.Reason
}
