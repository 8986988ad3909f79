// seehuhn.de/go/vectorlab - layered parametric pattern rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package store keeps a library of named projects in an SQLite database.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"seehuhn.de/go/vectorlab/internal/vlog"
	"seehuhn.de/go/vectorlab/scene"
)

// ErrNotFound is returned when a project does not exist.
var ErrNotFound = errors.New("project not found")

// schemaVersion is incremented whenever the tables change.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS projects (
    name   TEXT PRIMARY KEY,
    saved  INTEGER NOT NULL,   -- UnixNano
    layers INTEGER NOT NULL,
    width  INTEGER NOT NULL,
    height INTEGER NOT NULL,
    data   TEXT NOT NULL
);

-- single row holding the most recent autosave
CREATE TABLE IF NOT EXISTS autosave (
    id    INTEGER PRIMARY KEY CHECK (id = 1),
    saved INTEGER NOT NULL,
    data  TEXT NOT NULL
);
`

// Entry describes a stored project.
type Entry struct {
	Name   string
	Saved  time.Time
	Layers int
	Width  int
	Height int
}

// Library is a project library backed by an SQLite file.
// It is safe for concurrent use.
type Library struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the library at path, creating the file if needed.
func Open(path string) (*Library, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Library{db: db, now: time.Now}, nil
}

// checkSchema records the schema version in a fresh database and
// refuses databases written by a newer version.
func checkSchema(db *sql.DB) error {
	var v int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
		if err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case v > schemaVersion:
		return fmt.Errorf("library schema version %d is newer than %d", v, schemaVersion)
	case v < schemaVersion:
		vlog.L().Info().Int("from", v).Int("to", schemaVersion).Msg("upgrading library schema")
		_, err = db.Exec("UPDATE schema_version SET version = ?", schemaVersion)
		return err
	}
	return nil
}

// Close closes the database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Save stores d under the given name, replacing any project of the same
// name.
func (l *Library) Save(ctx context.Context, name string, d *scene.Document) error {
	if name == "" {
		return errors.New("empty project name")
	}
	data, err := encode(d)
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO projects (name, saved, layers, width, height, data)
		VALUES (?, ?, ?, ?, ?, ?)`,
		name, l.now().UnixNano(), len(d.Layers), d.Width, d.Height, data)
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	vlog.L().Debug().Str("project", name).Int("layers", len(d.Layers)).Msg("saved")
	return nil
}

// Load returns the project stored under name.
func (l *Library) Load(ctx context.Context, name string) (*scene.Document, error) {
	var data string
	err := l.db.QueryRowContext(ctx, "SELECT data FROM projects WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return scene.Decode(bytes.NewReader([]byte(data)))
}

// List returns all stored projects, sorted by name.
func (l *Library) List(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		"SELECT name, saved, layers, width, height FROM projects ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var res []Entry
	for rows.Next() {
		var e Entry
		var saved int64
		if err := rows.Scan(&e.Name, &saved, &e.Layers, &e.Width, &e.Height); err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		e.Saved = time.Unix(0, saved)
		res = append(res, e)
	}
	return res, rows.Err()
}

// Delete removes the project stored under name.
func (l *Library) Delete(ctx context.Context, name string) error {
	res, err := l.db.ExecContext(ctx, "DELETE FROM projects WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}

// Autosave overwrites the autosave slot with d.
func (l *Library) Autosave(ctx context.Context, d *scene.Document) error {
	data, err := encode(d)
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO autosave (id, saved, data) VALUES (1, ?, ?)",
		l.now().UnixNano(), data)
	if err != nil {
		return fmt.Errorf("autosave: %w", err)
	}
	return nil
}

// LoadAutosave returns the most recent autosave together with the time
// it was written.
func (l *Library) LoadAutosave(ctx context.Context) (*scene.Document, time.Time, error) {
	var data string
	var saved int64
	err := l.db.QueryRowContext(ctx, "SELECT saved, data FROM autosave WHERE id = 1").Scan(&saved, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, fmt.Errorf("autosave: %w", ErrNotFound)
	} else if err != nil {
		return nil, time.Time{}, fmt.Errorf("autosave: %w", err)
	}
	d, err := scene.Decode(bytes.NewReader([]byte(data)))
	if err != nil {
		return nil, time.Time{}, err
	}
	return d, time.Unix(0, saved), nil
}

func encode(d *scene.Document) (string, error) {
	var buf bytes.Buffer
	if err := scene.Encode(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
