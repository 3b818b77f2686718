package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	configlibsql "precinct-results/lib/configutil/libsql"
	"precinct-results/services/resultstore"
	"precinct-results/services/resultstore/db"
	"precinct-results/services/tally/sinks"

	"github.com/spf13/cobra"
)

type outputFlags struct {
	out       *string
	dbFile    *string
	dbUrl     *string
	dbToken   *string
	showTable *bool
}

func registerOutputFlags(cmd *cobra.Command) *outputFlags {
	return &outputFlags{
		out: cmd.Flags().StringP("out", "o", "", "CSV file to write, - for stdout."),
		dbFile: cmd.Flags().String(
			"db", "", "SQLite file to store the run in, may start with <dev_state>.",
		),
		dbUrl: cmd.Flags().String(
			"db-url", "", "libsql server to store the run in, defaults to $TALLY_DB_URL.",
		),
		dbToken: cmd.Flags().String(
			"db-auth-token", "", "Auth token for --db-url, defaults to $TALLY_DB_AUTH_TOKEN.",
		),
		showTable: cmd.Flags().Bool("table", false, "Print the records as a table once done."),
	}
}

func flagOrEnv(value, key string) string {
	if value != "" {
		return value
	}
	return os.Getenv(key)
}

// storeConfig is read after .env has been loaded, so the environment
// fallbacks cannot be flag defaults.
func (f *outputFlags) storeConfig() configlibsql.Struct {
	return configlibsql.Struct{
		File:      *f.dbFile,
		Url:       flagOrEnv(*f.dbUrl, "TALLY_DB_URL"),
		AuthToken: flagOrEnv(*f.dbToken, "TALLY_DB_AUTH_TOKEN"),
	}
}

// output is every sink a command writes to. Nothing it opened survives a
// failed run: the CSV file is removed and the stored run rolled back.
type output struct {
	sinks.Multi

	csvPath string
	csvFile *os.File
	db      *sql.DB
	run     *resultstore.RunSink
}

func (f *outputFlags) open(ctx context.Context, source, county string) (*output, error) {
	o := &output{}

	config := f.storeConfig()
	if config.File != "" || config.Url != "" {
		database, err := config.OpenDB(db.Schema)
		if err != nil {
			return nil, fmt.Errorf("open result store: %w", err)
		}
		run, err := resultstore.NewStore(database).StartRun(ctx, source, county)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("start run: %w", err)
		}
		slog.InfoContext(ctx, "storing run", "run_id", run.ID())
		o.db = database
		o.run = run
		o.Multi = append(o.Multi, run)
	}

	if *f.showTable {
		o.Multi = append(o.Multi, sinks.NewTable(os.Stdout))
	}

	path := *f.out
	if path == "" && len(o.Multi) == 0 {
		path = "-"
	}
	switch path {
	case "":
	case "-":
		o.Multi = append(o.Multi, sinks.NewCSV(os.Stdout))
	default:
		file, err := os.Create(path)
		if err != nil {
			o.close(err)
			return nil, err
		}
		o.csvPath = path
		o.csvFile = file
		o.Multi = append(o.Multi, sinks.NewCSV(file))
	}

	return o, nil
}

// close flushes and commits everything when runErr is nil, otherwise it
// discards all partial output.
func (o *output) close(runErr error) error {
	var errs []error
	if runErr == nil {
		err := o.Flush()
		if err != nil {
			errs = append(errs, err)
			runErr = err
		}
	}

	if o.run != nil {
		var err error
		if runErr == nil {
			err = o.run.Commit()
		} else {
			err = o.run.Rollback()
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if o.db != nil {
		errs = append(errs, o.db.Close())
	}

	if o.csvFile != nil {
		errs = append(errs, o.csvFile.Close())
		if runErr != nil {
			slog.Warn("removing partial output", "path", o.csvPath)
			errs = append(errs, os.Remove(o.csvPath))
		}
	}

	return errors.Join(errs...)
}
