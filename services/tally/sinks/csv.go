package sinks

import (
	"encoding/csv"
	"io"
	"precinct-results/services/tally"
)

// CSV writes records as comma separated rows in the header's column order.
type CSV struct {
	w       *csv.Writer
	columns []string
}

func NewCSV(w io.Writer) *CSV {
	return &CSV{w: csv.NewWriter(w)}
}

func (s *CSV) WriteHeader(columns []string) error {
	s.columns = columns
	return s.w.Write(columns)
}

func (s *CSV) WriteRow(record tally.Record) error {
	return s.w.Write(record.Values(s.columns))
}

func (s *CSV) Flush() error {
	s.w.Flush()
	return s.w.Error()
}
