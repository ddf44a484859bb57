package model

import "github.com/paulmach/orb"

// StopPosition is a classified Node keyed by node id: the point where a
// vehicle door aligns with a platform.
type StopPosition struct {
	NodeID       int64
	Node         *Node
	Geometry     orb.Point
	TagMods      ModSet // +1 predicates
	TagMaybeMods ModSet // 0 predicates
	TrackMods    ModSet // union of adjacent track modalities
	Mods         ModSet // sealed final set, computed in §4.3
}

// Pole is a classified Node: the signpost/shelter where a vehicle halts.
type Pole struct {
	NodeID       int64
	Node         *Node
	Geometry     orb.Point
	TagMods      ModSet
	TagMaybeMods ModSet
	TrackMods    ModSet
	Mods         ModSet
	MaybeMods    ModSet
}

// Platform is a classified Area: the passenger waiting space.
type Platform struct {
	AreaID    int64
	Area      *Area
	Geometry  orb.Geometry // polygon; buffered from a line source if FromLine
	Mods      ModSet
	MaybeMods ModSet
}

// Station is a classified Node or Area used only for the "invisible bus in
// a bus station" rendering-grade promotion of §4.7.
type Station struct {
	ID       int64
	Kind     ObjectKind // KindNode or via Area
	Geometry orb.Geometry
	Tags     TagMap
	Mods     ModSet
}

// DubiousObject is any object that looked PT-related by one classifier
// rule but failed a later consistency check. Retained for diagnostic
// export only; never participates in matching.
type DubiousObject struct {
	ID       int64
	Kind     ObjectKind
	Tags     TagMap
	Geometry orb.Geometry
	Reason   string
}

// StopoInfo is one ranked candidate stop-position record attached to a
// Plole: the matcher's score plus enough metadata to explain the ranking.
type StopoInfo struct {
	StopoID int64
	Score   float64
}

// Plole is a matched platform+pole pair. Either PlatformID or PoleID may
// be the sentinel 0 (absent); never both.
type Plole struct {
	ID          int64
	PlatformID  int64 // 0 if absent
	PoleID      int64 // 0 if absent
	Mods        ModSet
	MaybeMods   ModSet
	StopoIDs    []int64 // ranked descending by score
	StopoInfos  []StopoInfo
	Diagnostics
}

// HasPlatform reports whether the plole carries a real platform.
func (p *Plole) HasPlatform() bool { return p.PlatformID != 0 }

// HasPole reports whether the plole carries a real pole.
func (p *Plole) HasPole() bool { return p.PoleID != 0 }

// Stop is the externally observable record unifying a plole with its
// realized stop position(s).
type Stop struct {
	ID         int64
	PloleID    int64 // -1 if orphaned (no plole)
	PlatformID int64 // 0 if absent
	PoleID     int64 // 0 if absent; negative if a virtual pole
	StopoID    int64 // 0 if absent
	Geometry   orb.Geometry // outline polygon
	Mods       ModSet
	MaybeMods  ModSet
	RenderGrade int // 0..4
	SchemaGrade int // 0..3
	Warnings    []string
	RegionCode  string
}
