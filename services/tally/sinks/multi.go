package sinks

import (
	"errors"
	"precinct-results/services/tally"
)

// Multi fans every call out to all of its sinks. A failing sink does not
// stop the others, the errors are joined.
type Multi []tally.Sink

func (m Multi) WriteHeader(columns []string) error {
	var errs []error
	for _, s := range m {
		err := s.WriteHeader(columns)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) WriteRow(record tally.Record) error {
	var errs []error
	for _, s := range m {
		err := s.WriteRow(record)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type flusher interface {
	Flush() error
}

// Flush flushes every sink that buffers output.
func (m Multi) Flush() error {
	var errs []error
	for _, s := range m {
		f, ok := s.(flusher)
		if !ok {
			continue
		}
		err := f.Flush()
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
