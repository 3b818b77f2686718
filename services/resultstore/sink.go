package resultstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"precinct-results/services/tally"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RunSink writes the records of a single run inside one transaction. It
// implements tally.Sink, nothing is visible to readers until Commit.
type RunSink struct {
	// carries the run span, ended by Commit or Rollback
	ctx  context.Context
	span trace.Span
	tx   *sql.Tx
	id   string
	seq  int

	insertTally *sql.Stmt
	insertCount *sql.Stmt
}

func (r *RunSink) ID() string {
	return r.id
}

func (r *RunSink) WriteHeader(columns []string) error {
	encoded, err := json.Marshal(columns)
	if err != nil {
		return err
	}
	_, err = r.tx.ExecContext(r.ctx, "update run set columns = ? where id = ?", string(encoded), r.id)
	if err != nil {
		return fmt.Errorf("store columns of run %s: %w", r.id, err)
	}
	return nil
}

func (r *RunSink) WriteRow(record tally.Record) error {
	seq := r.seq
	r.seq++

	district := sql.NullInt64{Int64: int64(record.District), Valid: record.District != 0}
	_, err := r.insertTally.ExecContext(
		r.ctx,
		r.id, seq,
		record.Precinct, record.Office, district, record.Party, record.Candidate,
	)
	if err != nil {
		err = fmt.Errorf("insert record %d of run %s: %w", seq, r.id, err)
		r.span.RecordError(err)
		return err
	}

	for name, value := range record.Counts {
		_, err = r.insertCount.ExecContext(r.ctx, r.id, seq, name, value)
		if err != nil {
			err = fmt.Errorf("insert count %q of record %d: %w", name, seq, err)
			r.span.RecordError(err)
			return err
		}
	}
	return nil
}

// Commit marks the run finished and makes its records visible.
func (r *RunSink) Commit() error {
	defer r.finish()
	_, err := r.tx.ExecContext(
		r.ctx,
		"update run set finished_at = ? where id = ?",
		time.Now().Unix(), r.id,
	)
	if err == nil {
		err = r.tx.Commit()
	} else {
		r.tx.Rollback()
	}
	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, "failed to commit run")
	}
	return err
}

// Rollback discards the run and everything written to it.
func (r *RunSink) Rollback() error {
	defer r.finish()
	r.span.SetStatus(codes.Error, "run rolled back")
	return r.tx.Rollback()
}

func (r *RunSink) finish() {
	r.insertTally.Close()
	r.insertCount.Close()
	r.span.SetAttributes(
		attribute.String("run_id", r.id),
		attribute.Int("records", r.seq),
	)
	r.span.End()
}
