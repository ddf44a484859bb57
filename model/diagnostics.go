package model

// Diagnostics is the append-only comment/warning side-channel attached to
// every RawObject and Area. It never aborts processing; later phases read
// it to decide whether an entity's output should be trusted or flagged.
type Diagnostics struct {
	Comments []string
	Warnings []string
}

// Comment appends an informational note.
func (d *Diagnostics) Comment(msg string) {
	d.Comments = append(d.Comments, msg)
}

// Warn appends a problem report.
func (d *Diagnostics) Warn(msg string) {
	d.Warnings = append(d.Warnings, msg)
}

// HasWarnings reports whether any warning has been recorded.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Merge appends another Diagnostics' comments and warnings onto d.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.Comments = append(d.Comments, other.Comments...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}
