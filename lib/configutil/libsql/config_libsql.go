package configlibsql

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Config points at either a local sqlite file or a remote libsql database.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (config Config) OpenDB() (*sql.DB, error) {
	if config.Url != "" {
		return openRemote(config.Url, config.AuthToken)
	}
	if config.File == "" {
		return nil, fmt.Errorf("a path was not specified")
	}

	dbpath := config.File
	if dbpath != ":memory:" {
		err := os.MkdirAll(filepath.Dir(dbpath), 0700)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// sqlite only supports a single writer, see
	// https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func openRemote(rawUrl, authToken string) (*sql.DB, error) {
	if !strings.HasPrefix(rawUrl, "libsql://") &&
		!strings.HasPrefix(rawUrl, "https://") &&
		!strings.HasPrefix(rawUrl, "http://") {
		return nil, fmt.Errorf("unsupported database url scheme: %s", rawUrl)
	}
	if authToken != "" {
		parsed, err := url.Parse(rawUrl)
		if err != nil {
			return nil, err
		}
		query := parsed.Query()
		query.Set("authToken", authToken)
		parsed.RawQuery = query.Encode()
		rawUrl = parsed.String()
	}
	return sql.Open("libsql", rawUrl)
}
