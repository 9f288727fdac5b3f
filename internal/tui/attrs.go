package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrs rebuilds the coordinate table from the selected rows.
func (m *Model) refreshAttrs() {
	if len(m.records) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showAttrs = false
		m.status = "no rows for current state"
		return
	}
	cols := []table.Column{
		{Title: "#", Width: 6},
		{Title: "state", Width: min(24, max(8, len(m.selected)+2))},
		{Title: "lon", Width: 14},
		{Title: "lat", Width: 14},
	}
	rows := make([]table.Row, 0, len(m.records))
	for i, r := range m.records {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			r.State,
			strconv.FormatFloat(r.Lon, 'f', -1, 64),
			strconv.FormatFloat(r.Lat, 'f', -1, 64),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.tbl.GotoTop()
}
