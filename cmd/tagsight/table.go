package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// lineTableStyle keeps listings compact on the narrow terminals at the
// scan stations: light box drawing, headers as written, no per-row rules.
var lineTableStyle = func() table.Style {
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Options.SeparateRows = false
	return style
}()

// lineColumn is one column of a line listing. Numeric columns right-align
// so ids and quantities line up.
type lineColumn struct {
	Title   string
	Numeric bool
}

// lineTable accumulates rows for the fixed-column listings the scan and
// ledger commands print.
type lineTable struct {
	columns []lineColumn
	rows    []table.Row
}

func newLineTable(columns ...lineColumn) *lineTable {
	return &lineTable{columns: columns}
}

// addRow appends a row, padding missing trailing cells with blanks.
func (t *lineTable) addRow(cells ...string) {
	row := make(table.Row, len(t.columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	t.rows = append(t.rows, row)
}

func (t *lineTable) render() string {
	if len(t.columns) == 0 {
		return ""
	}

	header := make(table.Row, len(t.columns))
	configs := make([]table.ColumnConfig, len(t.columns))
	for i, col := range t.columns {
		header[i] = col.Title
		align := text.AlignLeft
		if col.Numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		}
	}

	tw := table.NewWriter()
	tw.SetStyle(lineTableStyle)
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	tw.AppendRows(t.rows)
	return tw.Render()
}
