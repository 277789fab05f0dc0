// Package format renders tabular output. Both the markdown exports and the
// terminal rendering go through it, so the two surfaces always shape tables
// the same way.
package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Style selects the output dialect of a Table.
type Style int

const (
	// Markdown renders a GitHub-flavoured Markdown table.
	Markdown Style = iota
	// Plain renders a fixed-width table for terminals.
	Plain
)

// Table collects header and rows, then renders once in the chosen Style.
type Table struct {
	writer table.Writer
	style  Style
}

func New(style Style) *Table {
	w := table.NewWriter()
	if style == Plain {
		w.SetStyle(table.StyleLight)
	}
	// keep header text as written; exports are diffed byte-for-byte
	w.Style().Format.Header = text.FormatDefault
	return &Table{writer: w, style: style}
}

func (t *Table) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, col := range cols {
		row[i] = col
	}
	t.writer.AppendHeader(row)
}

func (t *Table) Row(cells ...any) {
	row := make(table.Row, len(cells))
	copy(row, cells)
	t.writer.AppendRow(row)
}

// RightAlign right-aligns the given 1-based columns (score and count columns).
func (t *Table) RightAlign(columns ...int) {
	cfgs := make([]table.ColumnConfig, 0, len(columns))
	for _, number := range columns {
		cfgs = append(cfgs, table.ColumnConfig{Number: number, Align: text.AlignRight})
	}
	t.writer.SetColumnConfigs(cfgs)
}

func (t *Table) Render() string {
	if t.style == Markdown {
		return t.writer.RenderMarkdown()
	}
	return t.writer.Render()
}
