// Package export implements §4.8: handing finished frames to external
// writers as GeoJSON, plus the per-plole provenance record and the
// grouped dubious-object quality report.
package export

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

// LayerWriter is the output sink for a region's exported layers. This
// repo ships one local-filesystem implementation (GeoJSONDirWriter);
// other destinations (object storage, a tile pipeline) can implement the
// same interface without touching the export adapter itself.
type LayerWriter interface {
	WriteLayer(name string, fc *geojson.FeatureCollection) error
	WritePlole(id int64, data []byte) error
	WriteReport(name string, data []byte) error
}

// GeoJSONDirWriter writes one ".geojson" file per layer under exportPath,
// one JSON file per plole under plolesPath, and report files under
// exportPath as plain JSON.
type GeoJSONDirWriter struct {
	ExportPath string
	PlolesPath string
}

// NewGeoJSONDirWriter creates the export and ploles directories if
// missing and returns a writer rooted at them.
func NewGeoJSONDirWriter(exportPath, plolesPath string) (*GeoJSONDirWriter, error) {
	if err := os.MkdirAll(exportPath, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(plolesPath, 0o755); err != nil {
		return nil, err
	}
	return &GeoJSONDirWriter{ExportPath: exportPath, PlolesPath: plolesPath}, nil
}

func (w *GeoJSONDirWriter) WriteLayer(name string, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.ExportPath, name+".geojson"), data, 0o644)
}

func (w *GeoJSONDirWriter) WritePlole(id int64, data []byte) error {
	return os.WriteFile(filepath.Join(w.PlolesPath, plolesFilename(id)), data, 0o644)
}

func (w *GeoJSONDirWriter) WriteReport(name string, data []byte) error {
	return os.WriteFile(filepath.Join(w.ExportPath, name+".json"), data, 0o644)
}

func plolesFilename(id int64) string {
	return "plole_" + strconv.FormatInt(id, 10) + ".json"
}
