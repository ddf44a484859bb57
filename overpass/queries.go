package overpass

// ObjectsQuery is the primary per-region query of §4.1: every node and
// area-producing way/relation carrying a tag the classifier listens to,
// scoped to the region's area id via the {{area}} placeholder BuildQuery
// substitutes.
const ObjectsQuery = `
area({{area}})->.searchArea;
(
  node["public_transport"](area.searchArea);
  node["highway"="bus_stop"](area.searchArea);
  node["highway"="platform"](area.searchArea);
  node["railway"~"^(stop|platform|tram_stop|station|halt)$"](area.searchArea);
  node["amenity"~"^(bus_stop|bus_station|ferry_terminal)$"](area.searchArea);
  node["aerialway"="station"](area.searchArea);
  way["public_transport"="platform"](area.searchArea);
  way["highway"="platform"](area.searchArea);
  way["railway"="platform"](area.searchArea);
  way["public_transport"="station"](area.searchArea);
  way["amenity"="bus_station"](area.searchArea);
  way["railway"~"^(station|halt)$"](area.searchArea);
  rel["public_transport"="platform"]["type"="multipolygon"](area.searchArea);
  rel["public_transport"="station"]["type"="multipolygon"](area.searchArea);
);
out body;
>;
out skel qt;
`

// TracksQuery is the §4.3 second query: every way referencing any of the
// seeded stopo/pole node ids, used to merge track modalities and
// layer/level tags. {{ids}} is substituted with a comma-joined id list by
// FetchTracks before {{area}} substitution.
const TracksQuery = `
area({{area}})->.searchArea;
way(bn:{{ids}})(area.searchArea);
out body;
>;
out skel qt;
`
