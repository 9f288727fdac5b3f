package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen split shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	sidebarW           int
	popup              string // rendered info box stacked under the header, if any
	mapX, mapY         int    // map origin in screen cells
	mapW, mapH         int
}

func (m Model) layout() layout {
	var lo layout
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
	}
	lo.contentW = max(10, m.width)
	popupH := 0
	if m.infoPopup != "" && !m.showAttrs {
		maxPopupW := max(20, min(48, lo.contentW/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.infoPopup)
		popupH = lipgloss.Height(box)
		lo.popup = lipgloss.Place(lo.contentW, popupH, lipgloss.Left, lipgloss.Top, box)
	}
	lo.contentH = max(4, m.height-headerHeight-footerHeight-popupH)
	lo.mapW = max(10, lo.contentW-lo.sidebarW-1)
	lo.mapH = lo.contentH
	if m.showSidebar {
		lo.mapX = lo.sidebarW + 1
	}
	lo.mapY = headerHeight + popupH
	return lo
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	}

	// Header
	title := " statemap ─ state boundary viewer "
	if m.selected != "" {
		title += "─ " + m.selected + " "
	}
	header := lipgloss.NewStyle().Width(lo.contentW).Padding(0).Render(titleStyle.Render(title))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View())
	}

	m.mapW, m.mapH = lo.mapW, lo.mapH
	var mapView string
	if m.showAttrs {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	} else {
		// plain map canvas: no border
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	rows := []string{header}
	if lo.popup != "" {
		rows = append(rows, lo.popup)
	}
	rows = append(rows, body, footer)
	ui := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"0 reset",
		"Tab states",
		"Enter plot",
		"c close ring",
		"a coords",
		"i info",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
