package render

import (
	"math"
	"strings"

	"statemap/internal/geom"
)

// Viewport zooms about the canvas centre and pans in whole cells.
type Viewport struct {
	Zoom    float64
	OffsetX int
	OffsetY int
}

// DefaultViewport is the unzoomed, unpanned view.
var DefaultViewport = Viewport{Zoom: 1}

// Projection maps lon/lat onto canvas dots using a single scale for both
// axes, so shapes keep their aspect ratio. The data bbox is centred.
type Projection struct {
	bbox  geom.BBox
	w, h  int // dots
	scale float64
	view  Viewport
}

// NewProjection fits bbox into a canvas of w x h dots. A bbox with zero
// extent on one axis is fitted on the other; a single point sits in the
// centre.
func NewProjection(bbox geom.BBox, w, h int, v Viewport) Projection {
	if v.Zoom <= 0 {
		v.Zoom = 1
	}
	p := Projection{bbox: bbox, w: w, h: h, view: v}
	sx, sy := math.Inf(1), math.Inf(1)
	if bw := bbox.Width(); bw > 0 {
		sx = float64(w-1) / bw
	}
	if bh := bbox.Height(); bh > 0 {
		sy = float64(h-1) / bh
	}
	p.scale = math.Min(sx, sy)
	if math.IsInf(p.scale, 1) {
		p.scale = 0
	}
	return p
}

func (p Projection) centre() (cx, cy, dx, dy float64) {
	cx = (p.bbox.MinX + p.bbox.MaxX) / 2
	cy = (p.bbox.MinY + p.bbox.MaxY) / 2
	dx = float64(p.w-1)/2 + float64(p.view.OffsetX*2)
	dy = float64(p.h-1)/2 + float64(p.view.OffsetY*4)
	return cx, cy, dx, dy
}

// Dot returns the canvas dot for (lon, lat). Dots may fall outside the
// canvas when zoomed or panned.
func (p Projection) Dot(lon, lat float64) (mx, my int) {
	cx, cy, dx, dy := p.centre()
	k := p.scale * p.view.Zoom
	x := dx + (lon-cx)*k
	y := dy - (lat-cy)*k
	return int(math.Round(x)), int(math.Round(y))
}

// LonLat inverts Dot. ok is false when the projection has no scale (empty
// or single-point data).
func (p Projection) LonLat(mx, my int) (lon, lat float64, ok bool) {
	k := p.scale * p.view.Zoom
	if k == 0 {
		return 0, 0, false
	}
	cx, cy, dx, dy := p.centre()
	lon = cx + (float64(mx)-dx)/k
	lat = cy - (float64(my)-dy)/k
	return lon, lat, true
}

// Draw projects records in order onto c as a polyline. With closeRing the
// last point is joined back to the first. Vertices with a NaN or infinite
// coordinate are skipped.
func Draw(c *Canvas, p Projection, records []geom.Record, closeRing bool) {
	records = finite(records)
	switch len(records) {
	case 0:
		return
	case 1:
		c.Set(p.Dot(records[0].Lon, records[0].Lat))
		return
	}
	px, py := p.Dot(records[0].Lon, records[0].Lat)
	for _, r := range records[1:] {
		x, y := p.Dot(r.Lon, r.Lat)
		c.Line(px, py, x, y)
		px, py = x, y
	}
	if closeRing && len(records) > 2 {
		x, y := p.Dot(records[0].Lon, records[0].Lat)
		c.Line(px, py, x, y)
	}
}

func finite(records []geom.Record) []geom.Record {
	out := records[:0:0]
	for _, r := range records {
		if isFinite(r.Lon) && isFinite(r.Lat) {
			out = append(out, r)
		}
	}
	return out
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Options controls Plot. A zero View.Zoom means 1.
type Options struct {
	Width  int // cells
	Height int // cells
	Close  bool
	View   Viewport
}

// Plot renders records as a polyline on a Width x Height braille canvas.
// An empty sequence gives a blank canvas.
func Plot(records []geom.Record, opts Options) string {
	return strings.Join(PlotLines(records, opts), "\n")
}

// PlotLines is Plot split into rows.
func PlotLines(records []geom.Record, opts Options) []string {
	c := NewCanvas(opts.Width, opts.Height)
	records = finite(records)
	if bbox, ok := geom.BoundOf(records); ok {
		w, h := c.Dots()
		Draw(c, NewProjection(bbox, w, h, opts.View), records, opts.Close)
	}
	return c.Lines()
}
