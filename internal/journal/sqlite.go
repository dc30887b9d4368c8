package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations.sql
var migrations string

type sqliteJournal struct {
	db *sql.DB
}

func openSQLite(path string) (*sqliteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal sqlite: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("journal sqlite open: %w", err)
	}
	// Single writer; SQLite serializes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal sqlite migrate: %w", err)
	}
	return &sqliteJournal{db: db}, nil
}

func (j *sqliteJournal) Add(ctx context.Context, e Entry) (Entry, error) {
	if e.Created.IsZero() {
		e.Created = time.Now()
	}
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO journal (room, batch, day, category, message, photo, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Room, e.Batch, e.Day, e.Category, e.Message, e.Photo, e.Created.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("journal add: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("journal add: %w", err)
	}
	return e, nil
}

func (j *sqliteJournal) List(ctx context.Context, f Filter) ([]Entry, error) {
	q := `SELECT id, room, batch, day, category, message, photo, created FROM journal WHERE 1=1`
	args := []any{}
	if f.Room != "" {
		q += ` AND room = ?`
		args = append(args, f.Room)
	}
	if f.Batch != "" {
		q += ` AND batch = ?`
		args = append(args, f.Batch)
	}
	if f.Category != "" {
		q += ` AND category = ?`
		args = append(args, f.Category)
	}
	if !f.Since.IsZero() {
		q += ` AND created >= ?`
		args = append(args, f.Since.UTC().Format(time.RFC3339))
	}
	q += ` ORDER BY id DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("journal list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *sqliteJournal) Count(ctx context.Context, room string) (int, error) {
	var n int
	var err error
	if room == "" {
		err = j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal`).Scan(&n)
	} else {
		err = j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal WHERE room = ?`, room).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("journal count: %w", err)
	}
	return n, nil
}

func (j *sqliteJournal) Last(ctx context.Context, room string) (Entry, bool, error) {
	q := `SELECT id, room, batch, day, category, message, photo, created FROM journal`
	args := []any{}
	if room != "" {
		q += ` WHERE room = ?`
		args = append(args, room)
	}
	q += ` ORDER BY id DESC LIMIT 1`

	row := j.db.QueryRowContext(ctx, q, args...)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (j *sqliteJournal) Close() error { return j.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var created string
	if err := s.Scan(&e.ID, &e.Room, &e.Batch, &e.Day, &e.Category, &e.Message, &e.Photo, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, sql.ErrNoRows
		}
		return Entry{}, fmt.Errorf("journal scan: %w", err)
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return Entry{}, fmt.Errorf("journal scan created: %w", err)
	}
	e.Created = t
	return e, nil
}
