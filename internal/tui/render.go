package tui

import (
	"strings"

	"statemap/internal/render"
)

// projection fits the selected state into a w x h cell map.
func (m Model) projection(w, h int) render.Projection {
	return render.NewProjection(m.bbox, w*2, h*4, m.view)
}

// cellToLonLat converts a map cell back to lon/lat at the cell centre.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if len(m.records) == 0 {
		return 0, 0, false
	}
	return m.projection(w, h).LonLat(cx*2+1, cy*4+2)
}

func (m Model) renderMap(w, h int) string {
	c := render.NewCanvas(w, h)
	if len(m.records) > 0 {
		render.Draw(c, m.projection(w, h), m.records, m.closeRing)
	}
	lines := c.Lines()
	for y := range lines {
		// Hover highlight: an orange circle at the hovered vertex cell
		if m.hovering && y == m.hoverMicY/4 {
			r := []rune(lines[y])
			cx := m.hoverMicX / 2
			if cx >= 0 && cx < len(r) {
				lines[y] = outlineStyle.Render(string(r[:cx])) + markerStyle.Render("◯") + outlineStyle.Render(string(r[cx+1:]))
				continue
			}
		}
		lines[y] = outlineStyle.Render(lines[y])
	}
	return strings.Join(lines, "\n")
}

// nearestVertex returns the dot of the vertex closest to dot (hx, hy).
func (m Model) nearestVertex(hx, hy, w, h int) (int, int, bool) {
	if len(m.records) == 0 {
		return 0, 0, false
	}
	p := m.projection(w, h)
	best := 1<<31 - 1
	bx, by := hx, hy
	for _, r := range m.records {
		mx, my := p.Dot(r.Lon, r.Lat)
		dx := mx - hx
		dy := my - hy
		if d := dx*dx + dy*dy; d < best {
			best = d
			bx, by = mx, my
		}
	}
	return bx, by, true
}
