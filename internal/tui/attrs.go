package tui

import (
	"encoding/json"
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the dataset
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+2)
	tcols = append(tcols, table.Column{Title: "#", Width: 4}, table.Column{Title: "type", Width: 16})
	maxColW := 24
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		// Normalize each row to match the number of table columns
		cells := make([]string, len(tcols))
		copy(cells, r)
		trows = append(trows, table.Row(cells))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes returns the property columns and one row per feature,
// each row led by the feature number and geometry type.
func (m *Model) buildAttributes() ([]string, [][]string) {
	if m.data == nil || len(m.data.Columns) == 0 {
		return nil, nil
	}
	rows := make([][]string, 0, len(m.data.Features))
	for i, f := range m.data.Features {
		vals := make([]string, 0, len(m.data.Columns)+2)
		vals = append(vals, strconv.Itoa(i+1), f.Geometry.Type().String())
		for _, k := range m.data.Columns {
			vals = append(vals, formatValue(f.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return m.data.Columns, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return strconv.FormatBool(t)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
