package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/vapstudy/vap"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS viewport_state (
	key TEXT PRIMARY KEY,
	first_bar INTEGER NOT NULL,
	last_bar INTEGER NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) (vap.Viewport, error) {
	var vp vap.Viewport
	err := s.db.QueryRowContext(ctx,
		`SELECT first_bar, last_bar FROM viewport_state WHERE key = ?`, key,
	).Scan(&vp.First, &vp.Last)
	if errors.Is(err, sql.ErrNoRows) {
		return vap.Viewport{}, ErrNotFound
	}
	if err != nil {
		return vap.Viewport{}, err
	}
	return vp, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, vp vap.Viewport) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO viewport_state (key, first_bar, last_bar, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			first_bar = excluded.first_bar,
			last_bar = excluded.last_bar,
			updated_at = excluded.updated_at`,
		key, vp.First, vp.Last,
	)
	return err
}

func (s *SQLiteStore) Reset(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM viewport_state WHERE key = ?`, key)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
