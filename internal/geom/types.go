package geom

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// Record is one row of the polygon table.
type Record struct {
	State string  `json:"state"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
}

type BBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Extend grows b to cover (x, y). first reports whether b is still unset.
func (b BBox) Extend(x, y float64, first bool) BBox {
	if first {
		return BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
	}
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
	return b
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Valid reports whether b has a non-zero extent on both axes.
func (b BBox) Valid() bool { return b.MaxX > b.MinX && b.MaxY > b.MinY }

// BoundOf returns the bbox of records; ok is false for an empty sequence.
func BoundOf(records []Record) (bbox BBox, ok bool) {
	for i, r := range records {
		bbox = bbox.Extend(r.Lon, r.Lat, i == 0)
	}
	return bbox, len(records) > 0
}

// Summary describes one state's boundary.
type Summary struct {
	State    string     `json:"state"`
	Points   int        `json:"points"`
	BBox     BBox       `json:"bbox"`
	Area     float64    `json:"area"`
	Centroid [2]float64 `json:"centroid"`
}

var (
	ErrEmptySource   = errors.New("empty source")
	ErrMissingColumn = errors.New("missing required column")
	ErrBadNumber     = errors.New("non-numeric coordinate")
)

// DataLoadError reports a polygon table that could not be loaded.
// Line is 0 when the failure is not tied to a row.
type DataLoadError struct {
	Path string
	Line int
	Err  error
}

func (e *DataLoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Points returns the (lon, lat) pairs of records in order.
func Points(records []Record) [][2]float64 {
	if len(records) == 0 {
		return nil
	}
	out := make([][2]float64, len(records))
	for i, r := range records {
		out[i] = [2]float64{r.Lon, r.Lat}
	}
	return out
}

func LineString(records []Record) orb.LineString {
	ls := make(orb.LineString, 0, len(records))
	for _, r := range records {
		ls = append(ls, orb.Point{r.Lon, r.Lat})
	}
	return ls
}

// Ring returns records as a ring, appending the first point when the
// sequence is not already closed.
func Ring(records []Record) orb.Ring {
	ring := orb.Ring(LineString(records))
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}
