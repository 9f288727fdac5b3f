package geom

import (
	"github.com/paulmach/orb/encoding/wkt"
)

// EncodeWKT returns the WKT of a state's geometry (see Geometry), or "" for
// an empty sequence.
func EncodeWKT(records []Record) string {
	g := Geometry(records)
	if g == nil {
		return ""
	}
	return wkt.MarshalString(g)
}
