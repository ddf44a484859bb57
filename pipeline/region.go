package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Region is one row of the §6 region manifest.
type Region struct {
	Code       string
	AdminLevel uint8
	Name       string
	MetersCRS  string
	Ignore     bool
	Timestamp  uint64
}

var manifestColumns = []string{"code", "admin_level", "name", "meters_crs", "ignore", "timestamp"}

// ReadManifest parses the region manifest CSV at path. The first row must
// be the header naming the §6 columns in any order; rows are otherwise
// returned in file order.
func ReadManifest(path string) ([]*Region, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied manifest path
	if err != nil {
		return nil, fmt.Errorf("reading region manifest: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading region manifest header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}
	for _, col := range manifestColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("region manifest missing column %q", col)
		}
	}

	var regions []*Region
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading region manifest row: %w", err)
		}

		admin, _ := strconv.ParseUint(row[idx["admin_level"]], 10, 8)
		ignore, _ := strconv.ParseBool(row[idx["ignore"]])
		timestamp, _ := strconv.ParseUint(row[idx["timestamp"]], 10, 64)

		regions = append(regions, &Region{
			Code:       row[idx["code"]],
			AdminLevel: uint8(admin),
			Name:       row[idx["name"]],
			MetersCRS:  row[idx["meters_crs"]],
			Ignore:     ignore,
			Timestamp:  timestamp,
		})
	}
	return regions, nil
}

// WriteManifest rewrites the manifest at path with updated rows, used by
// the driver to stamp a fresh timestamp onto successfully processed
// regions.
func WriteManifest(path string, regions []*Region) error {
	f, err := os.Create(path) //nolint:gosec // operator-supplied manifest path
	if err != nil {
		return fmt.Errorf("writing region manifest: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(manifestColumns); err != nil {
		return err
	}
	for _, r := range regions {
		row := []string{
			r.Code,
			strconv.FormatUint(uint64(r.AdminLevel), 10),
			r.Name,
			r.MetersCRS,
			strconv.FormatBool(r.Ignore),
			strconv.FormatUint(r.Timestamp, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
