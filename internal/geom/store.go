package geom

import (
	"math"

	"github.com/paulmach/orb/planar"
)

// Store is an immutable polygon table. It is built once by Load or
// LoadReader and is safe for concurrent readers.
type Store struct {
	source  string
	records []Record
	byState map[string][]int // row indexes in file order
	order   []string         // first-appearance order
}

type builder struct {
	s *Store
}

func newBuilder(source string) *builder {
	return &builder{s: &Store{source: source, byState: map[string][]int{}}}
}

func (b *builder) add(r Record) {
	s := b.s
	if _, ok := s.byState[r.State]; !ok {
		s.order = append(s.order, r.State)
	}
	s.byState[r.State] = append(s.byState[r.State], len(s.records))
	s.records = append(s.records, r)
}

func (b *builder) build() *Store {
	s := b.s
	b.s = nil
	return s
}

// Source is the path or name the table was loaded from.
func (s *Store) Source() string { return s.source }

// Len is the total number of rows.
func (s *Store) Len() int { return len(s.records) }

// State returns the rows whose state equals name exactly, in file order.
// An unknown name yields an empty slice. The result is a copy.
func (s *Store) State(name string) []Record {
	idx := s.byState[name]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Record, len(idx))
	for i, j := range idx {
		out[i] = s.records[j]
	}
	return out
}

// States returns the distinct state names in order of first appearance.
func (s *Store) States() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Has reports whether any row carries name.
func (s *Store) Has(name string) bool {
	return len(s.byState[name]) > 0
}

func (s *Store) Bound(name string) (BBox, bool) {
	return BoundOf(s.State(name))
}

// Summary computes point count, bbox, and the planar area and centroid of
// the state's closed ring.
func (s *Store) Summary(name string) (Summary, bool) {
	recs := s.State(name)
	if len(recs) == 0 {
		return Summary{State: name}, false
	}
	bbox, _ := BoundOf(recs)
	sum := Summary{State: name, Points: len(recs), BBox: bbox}
	ring := Ring(recs)
	if len(ring) >= 4 {
		c, area := planar.CentroidArea(ring)
		sum.Area = math.Abs(area)
		sum.Centroid = [2]float64{c[0], c[1]}
	} else {
		sum.Centroid = [2]float64{(bbox.MinX + bbox.MaxX) / 2, (bbox.MinY + bbox.MaxY) / 2}
	}
	return sum, true
}

// Summaries returns a Summary per state in first-appearance order.
func (s *Store) Summaries() []Summary {
	out := make([]Summary, 0, len(s.order))
	for _, name := range s.order {
		sum, _ := s.Summary(name)
		out = append(out, sum)
	}
	return out
}
