package resultstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"precinct-results/services/tally"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

type Run struct {
	ID      string
	Source  string
	County  string
	Columns []string
	Started time.Time
	// zero while the run is still being written
	Finished time.Time
	Records  int
}

// StartRun opens a transaction for a new run, the returned sink must be
// committed or rolled back. The run is traced by a single span that stays
// open until then.
func (s Store) StartRun(ctx context.Context, source, county string) (*RunSink, error) {
	ctx, runSpan := tracer.Start(ctx, "Run")
	runSpan.SetAttributes(
		attribute.String("source", source),
		attribute.String("county", county),
	)

	sink, err := s.startRun(ctx, source, county)
	if err != nil {
		runSpan.RecordError(err)
		runSpan.SetStatus(codes.Error, "failed to start run")
		runSpan.End()
		return nil, err
	}
	sink.ctx = ctx
	sink.span = runSpan
	return sink, nil
}

func (s Store) startRun(ctx context.Context, source, county string) (*RunSink, error) {
	ctx, span := tracer.Start(ctx, "StartRun")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to begin transaction")
		return nil, err
	}

	id := uuid.NewString()
	span.SetAttributes(attribute.String("run_id", id))

	_, err = tx.ExecContext(
		ctx,
		"insert into run(id, source, county, started_at) values (?, ?, ?, ?)",
		id, source, county, time.Now().Unix(),
	)
	if err != nil {
		tx.Rollback()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert run")
		return nil, err
	}

	insertTally, err := tx.PrepareContext(ctx, `insert into tally(
		run_id, seq, precinct, office, district, party, candidate
	) values (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	insertCount, err := tx.PrepareContext(ctx, "insert into tally_count(run_id, seq, name, value) values (?, ?, ?, ?)")
	if err != nil {
		insertTally.Close()
		tx.Rollback()
		return nil, err
	}

	return &RunSink{
		tx:          tx,
		id:          id,
		insertTally: insertTally,
		insertCount: insertCount,
	}, nil
}

// Runs lists every run, most recent first.
func (s Store) Runs(ctx context.Context) ([]Run, error) {
	ctx, span := tracer.Start(ctx, "Runs")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `select
		run.id, run.source, run.county, run.columns, run.started_at, run.finished_at,
		(select count(*) from tally where tally.run_id = run.id)
	from run
	order by run.started_at desc, run.id`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query runs")
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			columns  string
			started  int64
			finished sql.NullInt64
		)
		err = rows.Scan(&run.ID, &run.Source, &run.County, &columns, &started, &finished, &run.Records)
		if err != nil {
			return nil, err
		}
		if columns != "" {
			err = json.Unmarshal([]byte(columns), &run.Columns)
			if err != nil {
				return nil, fmt.Errorf("decode columns of run %s: %w", run.ID, err)
			}
		}
		run.Started = time.Unix(started, 0)
		if finished.Valid {
			run.Finished = time.Unix(finished.Int64, 0)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Records reads back a run's records in the order they were written.
func (s Store) Records(ctx context.Context, runID string) ([]tally.Record, error) {
	ctx, span := tracer.Start(ctx, "Records")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", runID))

	var county string
	err := s.db.QueryRowContext(ctx, "select county from run where id = ?", runID).Scan(&county)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `select
		tally.seq, tally.precinct, tally.office, tally.district, tally.party, tally.candidate,
		tally_count.name, tally_count.value
	from tally
	left join tally_count on tally_count.run_id = tally.run_id and tally_count.seq = tally.seq
	where tally.run_id = ?
	order by tally.seq`, runID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query records")
		return nil, err
	}
	defer rows.Close()

	var records []tally.Record
	lastSeq := -1
	for rows.Next() {
		var (
			seq      int
			record   tally.Record
			district sql.NullInt64
			name     sql.NullString
			value    sql.NullInt64
		)
		err = rows.Scan(
			&seq, &record.Precinct, &record.Office, &district, &record.Party, &record.Candidate,
			&name, &value,
		)
		if err != nil {
			return nil, err
		}

		if seq != lastSeq {
			record.County = county
			record.District = int(district.Int64)
			record.Counts = make(map[string]int)
			records = append(records, record)
			lastSeq = seq
		}
		if name.Valid {
			records[len(records)-1].Counts[name.String] = int(value.Int64)
		}
	}
	return records, rows.Err()
}

type Total struct {
	Office    string
	District  int
	Party     string
	Candidate string
	Value     int
}

// Totals sums one count column across every precinct of a run, grouped by
// contest and candidate.
func (s Store) Totals(ctx context.Context, runID, column string) ([]Total, error) {
	ctx, span := tracer.Start(ctx, "Totals")
	defer span.End()
	span.SetAttributes(
		attribute.String("run_id", runID),
		attribute.String("column", column),
	)

	rows, err := s.db.QueryContext(ctx, `select
		tally.office, tally.district, tally.party, tally.candidate, sum(tally_count.value)
	from tally
	inner join tally_count on tally_count.run_id = tally.run_id and tally_count.seq = tally.seq
	where tally.run_id = ? and tally_count.name = ?
	group by tally.office, tally.district, tally.party, tally.candidate
	order by tally.office, tally.district, tally.party, sum(tally_count.value) desc, tally.candidate`,
		runID, column,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to query totals")
		return nil, err
	}
	defer rows.Close()

	var totals []Total
	for rows.Next() {
		var (
			total    Total
			district sql.NullInt64
		)
		err = rows.Scan(&total.Office, &district, &total.Party, &total.Candidate, &total.Value)
		if err != nil {
			return nil, err
		}
		total.District = int(district.Int64)
		totals = append(totals, total)
	}
	return totals, rows.Err()
}

// DeleteRun removes a run and all of its records.
func (s Store) DeleteRun(ctx context.Context, runID string) error {
	ctx, span := tracer.Start(ctx, "DeleteRun")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, query := range []string{
		"delete from tally_count where run_id = ?",
		"delete from tally where run_id = ?",
		"delete from run where id = ?",
	} {
		_, err = tx.ExecContext(ctx, query, runID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to delete run")
			return err
		}
	}
	return tx.Commit()
}
