// Package state is the durable key value state of the cli, each value is a
// list of strings stored as a json array.
package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"lazycf/internal/components/assert"
	"lazycf/internal/components/telemetry"
)

const (
	report_store_get    = "store.get"
	report_store_update = "store.update"
)

const schema = `create table if not exists kv (
	key text primary key,
	value text not null
)`

type Store struct {
	db  *sql.DB
	tel telemetry.API
}

// Open creates the schema if it does not exist yet.
func Open(ctx context.Context, db *sql.DB, tel telemetry.API) (*Store, error) {
	assert.NotNil(db, "db")
	assert.NotNil(tel, "telemetry")

	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return nil, fmt.Errorf("create state schema: %w", err)
	}
	return &Store{db: db, tel: telemetry.NewScopedAPI("state", tel)}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]string, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "select value from kv where key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		s.tel.ReportBroken(report_store_get, err, key)
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}

	var value []string
	err = json.Unmarshal([]byte(raw), &value)
	if err != nil {
		s.tel.ReportBroken(report_store_get, fmt.Errorf("unmarshal json: %w", err), key)
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Update replaces the value of key, a nil value deletes it.
func (s *Store) Update(ctx context.Context, key string, value []string) error {
	if value == nil {
		_, err := s.db.ExecContext(ctx, "delete from kv where key = ?", key)
		if err != nil {
			s.tel.ReportBroken(report_store_update, err, key)
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("update %s: %w", key, err)
	}
	_, err = s.db.ExecContext(
		ctx,
		`insert into kv (key, value) values (?, ?)
		on conflict (key) do update set value = excluded.value`,
		key, string(raw),
	)
	if err != nil {
		s.tel.ReportBroken(report_store_update, err, key)
		return fmt.Errorf("update %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
