package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"statemap/internal/render"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.showAttrs {
			switch msg.String() {
			case "esc", "a":
				m.showAttrs = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.view.Zoom < 64 {
				m.view.Zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.view.Zoom)
			}
		case "-", "_":
			if m.view.Zoom > 0.05 {
				m.view.Zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.view.Zoom)
			}
		case "0":
			m.view = render.DefaultViewport
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "c":
			m.closeRing = !m.closeRing
			m.status = fmt.Sprintf("close ring: %v", m.closeRing)
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = true
			m.refreshAttrs()
		case "i":
			if m.infoPopup != "" {
				m.infoPopup = ""
				break
			}
			m.infoPopup = m.summaryText()
			m.status = "info popup"
		case "esc":
			m.infoPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(stateItem); ok {
					m.selectState(it.name)
				}
			}
		case "up":
			// with the sidebar open up/down move the list cursor
			if !m.showSidebar {
				m.view.OffsetY -= 1
			}
		case "down":
			if !m.showSidebar {
				m.view.OffsetY += 1
			}
		case "left":
			m.view.OffsetX -= 2
		case "right":
			m.view.OffsetX += 2
		}
	case tea.MouseMsg:
		m.trackHover(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// trackHover updates the hovered vertex and the lon/lat readout for the
// mouse at screen cell (x, y).
func (m *Model) trackHover(x, y int) {
	lo := m.layout()
	if x < lo.mapX || x >= lo.mapX+lo.mapW || y < lo.mapY || y >= lo.mapY+lo.mapH {
		m.hovering, m.hoverHasGeo = false, false
		return
	}
	cx, cy := x-lo.mapX, y-lo.mapY
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(cx, cy, lo.mapW, lo.mapH)
	m.hoverMicX, m.hoverMicY, m.hovering = m.nearestVertex(cx*2, cy*4, lo.mapW, lo.mapH)
}

func (m Model) summaryText() string {
	if m.selected == "" {
		return "no state selected"
	}
	sum, ok := m.store.Summary(m.selected)
	if !ok {
		return fmt.Sprintf("state: %s\nno rows", m.selected)
	}
	meta := []string{
		fmt.Sprintf("state: %s", sum.State),
		fmt.Sprintf("source: %s", m.store.Source()),
		fmt.Sprintf("points: %d", sum.Points),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", sum.BBox.MinX, sum.BBox.MinY, sum.BBox.MaxX, sum.BBox.MaxY),
		fmt.Sprintf("centroid: lon=%.5f lat=%.5f", sum.Centroid[0], sum.Centroid[1]),
		fmt.Sprintf("area: %.5f deg²", sum.Area),
	}
	return strings.Join(meta, "\n")
}
