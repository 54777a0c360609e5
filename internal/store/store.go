// Package store keeps game snapshots in named save slots in a SQLite file.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for a save slot that does not exist.
var ErrNotFound = errors.New("save not found")

const schema = `CREATE TABLE IF NOT EXISTS saves (
	name       TEXT PRIMARY KEY,
	team       TEXT NOT NULL DEFAULT '',
	season     INTEGER NOT NULL,
	week       INTEGER NOT NULL,
	snapshot   BLOB NOT NULL,
	saved_at   INTEGER NOT NULL
)`

// Save describes one slot. Snapshot is only filled in by Load.
type Save struct {
	Name     string
	Team     string
	Season   int
	Week     int
	SavedAt  time.Time
	Snapshot []byte
}

type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens the save file at path, creating it and its schema if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("save file path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Put writes save into its slot, replacing what was there. The write is a
// single transaction: on any error the previous save is left untouched.
func (s *Store) Put(ctx context.Context, save Save) (err error) {
	save.Name = strings.TrimSpace(save.Name)
	if save.Name == "" {
		return fmt.Errorf("save name is required")
	}
	if len(save.Snapshot) == 0 {
		return fmt.Errorf("save %s: snapshot is empty", save.Name)
	}
	if save.SavedAt.IsZero() {
		save.SavedAt = s.now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO saves (name, team, season, week, snapshot, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		    team = excluded.team,
		    season = excluded.season,
		    week = excluded.week,
		    snapshot = excluded.snapshot,
		    saved_at = excluded.saved_at`,
		save.Name, save.Team, save.Season, save.Week, save.Snapshot, save.SavedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write save %s: %w", save.Name, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save %s: %w", save.Name, err)
	}
	return nil
}

// Get loads a slot including its snapshot.
func (s *Store) Get(ctx context.Context, name string) (Save, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT name, team, season, week, snapshot, saved_at FROM saves WHERE name = ?`,
		strings.TrimSpace(name),
	)
	var save Save
	var savedAt int64
	if err := row.Scan(&save.Name, &save.Team, &save.Season, &save.Week, &save.Snapshot, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Save{}, fmt.Errorf("load %s: %w", name, ErrNotFound)
		}
		return Save{}, fmt.Errorf("load %s: %w", name, err)
	}
	save.SavedAt = time.UnixMilli(savedAt).UTC()
	return save, nil
}

// List returns every slot without snapshots, most recent first.
func (s *Store) List(ctx context.Context) ([]Save, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT name, team, season, week, saved_at FROM saves ORDER BY saved_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var saves []Save
	for rows.Next() {
		var save Save
		var savedAt int64
		if err := rows.Scan(&save.Name, &save.Team, &save.Season, &save.Week, &savedAt); err != nil {
			return nil, fmt.Errorf("list saves: %w", err)
		}
		save.SavedAt = time.UnixMilli(savedAt).UTC()
		saves = append(saves, save)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return saves, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saves WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete %s: %w", name, ErrNotFound)
	}
	return nil
}
