package geom

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlLinearRing struct {
	Coordinates string `xml:"coordinates"`
}

type kmlBoundary struct {
	LinearRing kmlLinearRing `xml:"LinearRing"`
}

type kmlPolygon struct {
	OuterBoundaryIs kmlBoundary `xml:"outerBoundaryIs"`
}

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

// kmlPlacemark carries exactly one of Point, LineString or Polygon.
type kmlPlacemark struct {
	Name       string      `xml:"name"`
	Point      *kmlCoords  `xml:"Point,omitempty"`
	LineString *kmlCoords  `xml:"LineString,omitempty"`
	Polygon    *kmlPolygon `xml:"Polygon,omitempty"`
}

type kmlDocument struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlRoot struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

// kmlCoordinates formats points as KML "lon,lat" tuples separated by spaces.
func kmlCoordinates(points []orb.Point) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, strconv.FormatFloat(p[0], 'f', -1, 64)+","+strconv.FormatFloat(p[1], 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}

// EncodeKML writes a KML document with one Placemark per named state that
// has rows. Boundaries follow Geometry: a Polygon with a closed LinearRing,
// or a Point or LineString when there are too few distinct vertices.
func EncodeKML(w io.Writer, s *Store, names ...string) error {
	doc := kmlRoot{Xmlns: "http://www.opengis.net/kml/2.2"}
	for _, name := range names {
		pm := kmlPlacemark{Name: name}
		switch g := Geometry(s.State(name)).(type) {
		case orb.Point:
			pm.Point = &kmlCoords{Coordinates: kmlCoordinates([]orb.Point{g})}
		case orb.LineString:
			pm.LineString = &kmlCoords{Coordinates: kmlCoordinates(g)}
		case orb.Polygon:
			pm.Polygon = &kmlPolygon{}
			pm.Polygon.OuterBoundaryIs.LinearRing.Coordinates = kmlCoordinates(g[0])
		default:
			continue
		}
		doc.Document.Placemarks = append(doc.Document.Placemarks, pm)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
