package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	devenv "precinct-results/dev/env"
	resultstoredb "precinct-results/services/resultstore/db"

	_ "modernc.org/sqlite"
)

func createDb(filename, schema string) error {
	path, err := devenv.ResolvePath(filepath.Join("<dev_state>", filename))
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec(schema)
	return err
}

func CreateResultsDB() error {
	return createDb("results.db", resultstoredb.Schema)
}

func PrintConfigLocations() {
	slog.Info("runs are stored in dev/.state/results.db by default, `tally summary` reads from it.")
	slog.Info("to export traces and metrics, create a telemetry.json5 in the repository root (see lib/telemetry).")
	slog.Info("TALLY_DB_URL and TALLY_DB_AUTH_TOKEN may be set in a .env file to store runs on a libsql server.")
}
