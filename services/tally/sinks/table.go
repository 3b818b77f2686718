package sinks

import (
	"io"
	"precinct-results/services/tally"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table buffers records into a terminal table, nothing is written until
// Flush.
type Table struct {
	t       table.Writer
	columns []string
}

func NewTable(w io.Writer) *Table {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return &Table{t: t}
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func (s *Table) WriteHeader(columns []string) error {
	s.columns = columns
	s.t.AppendHeader(toRow(columns))
	return nil
}

func (s *Table) WriteRow(record tally.Record) error {
	s.t.AppendRow(toRow(record.Values(s.columns)))
	return nil
}

func (s *Table) Flush() error {
	s.t.Render()
	return nil
}
