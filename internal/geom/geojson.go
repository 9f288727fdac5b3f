package geom

import (
	"encoding/json"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Geometry converts a state's rows into an orb geometry: a closed Polygon
// when the closed ring has at least 4 positions, a Point for 1 row, a
// LineString otherwise and nil when records is empty.
func Geometry(records []Record) orb.Geometry {
	switch len(records) {
	case 0:
		return nil
	case 1:
		return orb.Point{records[0].Lon, records[0].Lat}
	}
	if ring := Ring(records); len(ring) >= 4 {
		return orb.Polygon{ring}
	}
	return LineString(records)
}

// FeatureCollection builds one Feature per named state that has rows.
// Unknown names are skipped.
func FeatureCollection(s *Store, names ...string) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, name := range names {
		recs := s.State(name)
		g := Geometry(recs)
		if g == nil {
			continue
		}
		f := geojson.NewFeature(g)
		f.Properties["state"] = name
		f.Properties["points"] = len(recs)
		fc.Append(f)
	}
	return fc
}

// EncodeGeoJSON writes the FeatureCollection for names to w.
func EncodeGeoJSON(w io.Writer, s *Store, names ...string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FeatureCollection(s, names...))
}
