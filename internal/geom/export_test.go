package geom

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportCSV = `state,lon,lat
Tri,0,0
Tri,4,0
Tri,4,3
Seg,1,1
Seg,2,2
`

func TestGeometryKinds(t *testing.T) {
	s := loadString(t, exportCSV)

	poly, ok := Geometry(s.State("Tri")).(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	ring := poly[0]
	assert.Len(t, ring, 4)
	assert.Equal(t, ring[0], ring[len(ring)-1])

	_, ok = Geometry(s.State("Seg")).(orb.LineString)
	assert.True(t, ok)

	assert.Nil(t, Geometry(nil))
}

func TestGeometryDegenerateRingIsLineString(t *testing.T) {
	back := []Record{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 0}}

	ls, ok := Geometry(back).(orb.LineString)
	require.True(t, ok, "got %T", Geometry(back))
	assert.Len(t, ls, 3)
}

func TestEncodeGeoJSON(t *testing.T) {
	s := loadString(t, exportCSV)

	var buf bytes.Buffer
	require.NoError(t, EncodeGeoJSON(&buf, s, "Tri", "Texas", "Seg"))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "Tri", fc.Features[0].Properties.MustString("state"))
	assert.Equal(t, "Polygon", fc.Features[0].Geometry.GeoJSONType())
	assert.Equal(t, "LineString", fc.Features[1].Geometry.GeoJSONType())
}

func TestEncodeWKT(t *testing.T) {
	s := loadString(t, exportCSV)

	assert.True(t, strings.HasPrefix(EncodeWKT(s.State("Tri")), "POLYGON(("))
	assert.True(t, strings.HasPrefix(EncodeWKT(s.State("Seg")), "LINESTRING("))
	assert.Equal(t, "POINT(5 6)", EncodeWKT([]Record{{State: "P", Lon: 5, Lat: 6}}))
	assert.Equal(t, "", EncodeWKT(nil))
}

func TestEncodeKML(t *testing.T) {
	s := loadString(t, exportCSV)

	var buf bytes.Buffer
	require.NoError(t, EncodeKML(&buf, s, "Tri", "Texas"))
	out := buf.String()

	assert.Contains(t, out, "<name>Tri</name>")
	assert.Contains(t, out, "<coordinates>0,0 4,0 4,3 0,0</coordinates>")
	assert.NotContains(t, out, "Texas")
}

func TestEncodeKMLShortStates(t *testing.T) {
	s := loadString(t, exportCSV+"Dot,5,6\n")

	var buf bytes.Buffer
	require.NoError(t, EncodeKML(&buf, s, "Seg", "Dot"))
	out := buf.String()

	assert.Contains(t, out, "<LineString>\n        <coordinates>1,1 2,2</coordinates>")
	assert.Contains(t, out, "<Point>\n        <coordinates>5,6</coordinates>")
	assert.NotContains(t, out, "LinearRing")
}

func TestEncodeCSVRoundTrip(t *testing.T) {
	s := loadString(t, scenarioCSV)

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, s.State("California")))
	back := loadString(t, buf.String())
	assert.Equal(t, s.State("California"), back.State("California"))
}

func TestRecordJSON(t *testing.T) {
	b, err := json.Marshal(Record{State: "Nevada", Lon: -117, Lat: 39})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"Nevada","lon":-117,"lat":39}`, string(b))
}
