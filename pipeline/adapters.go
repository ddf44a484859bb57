package pipeline

import (
	"github.com/paulmach/orb"
	"github.com/theoremus-urban-solutions/ptstop/classify"
	"github.com/theoremus-urban-solutions/ptstop/match"
	"github.com/theoremus-urban-solutions/ptstop/model"
)

// stopoObject, poleObject, and plafoObject adapt the classifier's bin
// entries to match.Object so the matcher stays ignorant of the concrete
// entity types (per match/matcher.go's doc comment).
type stopoObject struct{ sp *model.StopPosition }

func (o stopoObject) ObjectID() int64                 { return o.sp.NodeID }
func (o stopoObject) ObjectGeometry() orb.Geometry     { return o.sp.Geometry }
func (o stopoObject) ObjectTags() model.TagMap         { return o.sp.Node.Tags }
func (o stopoObject) ObjectMods() model.ModSet         { return o.sp.Mods }
func (o stopoObject) ObjectMaybeMods() model.ModSet    { return model.NewModSet() }

type poleObject struct{ p *model.Pole }

func (o poleObject) ObjectID() int64              { return o.p.NodeID }
func (o poleObject) ObjectGeometry() orb.Geometry { return o.p.Geometry }
func (o poleObject) ObjectTags() model.TagMap     { return o.p.Node.Tags }
func (o poleObject) ObjectMods() model.ModSet     { return o.p.Mods }
func (o poleObject) ObjectMaybeMods() model.ModSet { return o.p.MaybeMods }

type plafoObject struct{ p *model.Platform }

func (o plafoObject) ObjectID() int64              { return o.p.AreaID }
func (o plafoObject) ObjectGeometry() orb.Geometry { return o.p.Geometry }
func (o plafoObject) ObjectTags() model.TagMap     { return o.p.Area.Tags }
func (o plafoObject) ObjectMods() model.ModSet     { return o.p.Mods }
func (o plafoObject) ObjectMaybeMods() model.ModSet { return o.p.MaybeMods }

func stopoObjects(bins *classify.Bins) []match.Object {
	out := make([]match.Object, 0, len(bins.Stopos))
	for _, sp := range bins.Stopos {
		out = append(out, stopoObject{sp})
	}
	return out
}

func poleObjects(bins *classify.Bins) []match.Object {
	out := make([]match.Object, 0, len(bins.Poles))
	for _, p := range bins.Poles {
		out = append(out, poleObject{p})
	}
	return out
}

func plafoObjects(bins *classify.Bins) []match.Object {
	out := make([]match.Object, 0, len(bins.Platforms))
	for _, p := range bins.Platforms {
		out = append(out, plafoObject{p})
	}
	return out
}
