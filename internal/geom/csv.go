package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load reads a polygon table from a delimited-text file.
// Column detection (case-insensitive): state|name, lon|lng|long|longitude|x
// and lat|latitude|y, the canonical name winning over an alias. Any failure is returned as a *DataLoadError.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	defer f.Close()
	return LoadReader(f, path)
}

// LoadReader is Load over an already open source. source names the input
// in errors and in Store.Source.
func LoadReader(r io.Reader, source string) (*Store, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &DataLoadError{Path: source, Err: ErrEmptySource}
	}
	if err != nil {
		return nil, &DataLoadError{Path: source, Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	idxState := findColumn(header, "state", "name")
	idxLon := findColumn(header, "lon", "lng", "long", "longitude", "x")
	idxLat := findColumn(header, "lat", "latitude", "y")
	var missing []string
	if idxState == -1 {
		missing = append(missing, "state")
	}
	if idxLon == -1 {
		missing = append(missing, "lon")
	}
	if idxLat == -1 {
		missing = append(missing, "lat")
	}
	if len(missing) > 0 {
		return nil, &DataLoadError{
			Path: source,
			Line: 1,
			Err:  fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", ")),
		}
	}

	b := newBuilder(source)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataLoadError{Path: source, Err: err}
		}
		line, _ := cr.FieldPos(0)
		lon, err := parseCoord(row[idxLon])
		if err != nil {
			return nil, &DataLoadError{Path: source, Line: line, Err: fmt.Errorf("%w: lon %q", ErrBadNumber, row[idxLon])}
		}
		lat, err := parseCoord(row[idxLat])
		if err != nil {
			return nil, &DataLoadError{Path: source, Line: line, Err: fmt.Errorf("%w: lat %q", ErrBadNumber, row[idxLat])}
		}
		// fields are slices of the whole line; clone so the store does not pin it
		b.add(Record{State: strings.Clone(row[idxState]), Lon: lon, Lat: lat})
	}
	return b.build(), nil
}

// findColumn returns the index of the first header equal to names[0], or
// failing that of the first header matching any later alias. -1 if none.
func findColumn(header []string, names ...string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}

// parseCoord rejects NaN and infinities along with unparsable text.
func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrBadNumber
	}
	return v, nil
}
