package configlibsql

import (
	"database/sql"
	"fmt"
	"net/url"
	devenv "precinct-results/dev/env"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct selects a database. Url takes precedence over File and points at
// a libsql server (libsql://, https:// or http://). File is a local SQLite
// path and may start with <dev_state>.
type Struct struct {
	File      string `json:"file" yaml:"file"`
	Url       string `json:"url" yaml:"url"`
	AuthToken string `json:"auth_token" yaml:"auth_token"`
}

// OpenDB opens the database and applies `schema`, which must be
// idempotent.
func (config Struct) OpenDB(schema string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch {
	case config.Url != "":
		dsn := config.Url
		if config.AuthToken != "" {
			values := url.Values{}
			values.Add("authToken", config.AuthToken)
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + values.Encode()
		}
		db, err = sql.Open("libsql", dsn)
	case config.File != "":
		var dbpath string
		dbpath, err = devenv.ResolvePath(config.File)
		if err != nil {
			return nil, err
		}
		db, err = sql.Open("sqlite", dbpath)
	default:
		return nil, fmt.Errorf("a file or url was not specified")
	}
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
