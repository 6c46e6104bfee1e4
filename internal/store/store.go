// Package store is the SQLite-backed preference store. It is only used when
// a preference database is configured.
package store

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// DB wraps the preferences database.
type DB struct {
	db *sql.DB
}

// Open creates or opens the database at path and runs migrations.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating database directory")
	}
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	return setup(sqlDB)
}

// OpenMemory opens an in-memory database, mostly for tests.
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "opening in-memory database")
	}
	// each new connection would get its own empty memory database
	sqlDB.SetMaxOpenConns(1)
	return setup(sqlDB)
}

func setup(sqlDB *sql.DB) (*DB, error) {
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "running migrations")
	}
	return &DB{db: sqlDB}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	visitor    TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      INTEGER NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (visitor, key)
)`

func (d *DB) Close() error {
	return d.db.Close()
}

// Get returns the stored boolean for visitor/key.
func (d *DB) Get(ctx context.Context, visitor, key string) (bool, bool, error) {
	var v int
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE visitor = ? AND key = ?`,
		visitor, key).Scan(&v)
	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, errors.Wrapf(err, "reading preference %s", key)
	}
	return v != 0, true, nil
}

// Set stores a boolean for visitor/key.
func (d *DB) Set(ctx context.Context, visitor, key string, value bool) error {
	v := 0
	if value {
		v = 1
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO preferences (visitor, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (visitor, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		visitor, key, v, time.Now().UTC())
	if err != nil {
		return errors.Wrapf(err, "writing preference %s", key)
	}
	return nil
}

// Cleanup removes preferences not touched since cutoff.
func (d *DB) Cleanup(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`DELETE FROM preferences WHERE updated_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "cleaning up preferences")
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		log.Printf("store: removed %d stale preferences", n)
	}
	return n, nil
}

// Visitor scopes the store to one visitor. The result satisfies
// theme.Store.
func (d *DB) Visitor(id string) *VisitorStore {
	return &VisitorStore{db: d, visitor: id}
}

type VisitorStore struct {
	db      *DB
	visitor string
}

func (s *VisitorStore) Get(ctx context.Context, key string) (bool, bool, error) {
	return s.db.Get(ctx, s.visitor, key)
}

func (s *VisitorStore) Set(ctx context.Context, key string, value bool) error {
	return s.db.Set(ctx, s.visitor, key, value)
}
