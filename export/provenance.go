package export

import "encoding/json"

// WriteProvenance marshals and persists one plole's provenance record via
// the given writer.
func WriteProvenance(w LayerWriter, rec ProvenanceRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return w.WritePlole(rec.PloleID, data)
}

// WriteDubiousReport marshals and persists the grouped dubious-object
// quality report via the given writer.
func WriteDubiousReport(w LayerWriter, entries []DubiousReportEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return w.WriteReport("dubious_report", data)
}
