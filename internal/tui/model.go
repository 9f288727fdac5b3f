package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"statemap/internal/geom"
	"statemap/internal/render"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	view render.Viewport

	status string

	// State list
	store *geom.Store
	l     list.Model

	// Data
	selected  string
	records   []geom.Record
	bbox      geom.BBox
	closeRing bool

	// last rendered map size
	mapW int
	mapH int

	// summary popup
	infoPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// coordinate table
	showAttrs bool
	tbl       table.Model
}

// Options preconfigures a Model.
type Options struct {
	State string // plotted at launch when non-empty
	Close bool   // join the last vertex back to the first
}

func New(store *geom.Store, opts Options) Model {
	m := Model{
		showSidebar: true,
		helpVisible: true,
		view:        render.DefaultViewport,
		status:      "statemap ready",
		store:       store,
		closeRing:   opts.Close,
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(stateItems(store), d, 0, 0)
	m.l.Title = "States"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	if opts.State != "" {
		m.selectState(opts.State)
		m.showSidebar = false
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Selected returns the plotted state name and its rows.
func (m Model) Selected() (string, []geom.Record) { return m.selected, m.records }
