package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"statemap/internal/geom"
	"statemap/internal/render"
)

type stateItem struct {
	name   string
	points int
}

func (s stateItem) Title() string       { return s.name }
func (s stateItem) Description() string { return fmt.Sprintf("%d points", s.points) }
func (s stateItem) FilterValue() string { return s.name }

func stateItems(store *geom.Store) []list.Item {
	names := store.States()
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, stateItem{name: name, points: len(store.State(name))})
	}
	return items
}

// selectState looks name up and resets the view onto it. A name with no
// rows leaves an empty canvas.
func (m *Model) selectState(name string) {
	m.selected = name
	m.records = m.store.State(name)
	m.bbox, _ = geom.BoundOf(m.records)
	m.view = render.DefaultViewport
	m.infoPopup = ""
	m.hovering, m.hoverHasGeo = false, false
	if len(m.records) == 0 {
		m.status = fmt.Sprintf("%s: no rows", name)
	} else {
		m.status = fmt.Sprintf("%s: %d points", name, len(m.records))
	}
	if m.showAttrs {
		m.refreshAttrs()
	}
}
