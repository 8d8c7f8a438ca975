package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordChange(c ChangeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO multiplier_changes
		(id, session, time, symbol, first_bar, last_bar, mode, bars, old_multiplier, new_multiplier)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Session, c.Time.UTC(), c.Symbol, c.First, c.Last, c.Mode, c.Bars, c.Old, c.New,
	)
	return err
}

// ListChanges returns the transitions for symbol in time order. An empty
// symbol lists every chart.
func (j *SQLiteJournal) ListChanges(ctx context.Context, symbol string) ([]ChangeRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, session, time, symbol, first_bar, last_bar, mode, bars, old_multiplier, new_multiplier
		FROM multiplier_changes
		WHERE ? = '' OR symbol = ?
		ORDER BY time ASC, id ASC`, symbol, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChangeRecord
	for rows.Next() {
		var c ChangeRecord
		if err := rows.Scan(
			&c.ID,
			&c.Session,
			&c.Time,
			&c.Symbol,
			&c.First,
			&c.Last,
			&c.Mode,
			&c.Bars,
			&c.Old,
			&c.New,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
