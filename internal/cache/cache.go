// Package cache stores fetched DBLP BibTeX exports in a local SQLite
// database so repeated runs against the same profile stay off the
// network.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultTTL is how long a cached export stays fresh.
const DefaultTTL = 24 * time.Hour

// Cache wraps a SQLite database of fetched exports keyed by person id.
type Cache struct {
	db  *sql.DB
	now func() time.Time // overridable in tests
}

// Open opens or creates the cache database at the given path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS fetches (
			pid        TEXT PRIMARY KEY,
			bibtex     TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached export for a pid if it is younger than maxAge.
// A miss (absent or stale) is ("", false, nil), not an error.
func (c *Cache) Get(pid string, maxAge time.Duration) (string, bool, error) {
	var bibtex string
	var fetchedAt int64

	err := c.db.QueryRow(
		`SELECT bibtex, fetched_at FROM fetches WHERE pid = ?`, pid,
	).Scan(&bibtex, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cache: %w", err)
	}

	if c.now().Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return "", false, nil
	}
	return bibtex, true, nil
}

// Put stores (or refreshes) the export for a pid.
func (c *Cache) Put(pid, bibtex string) error {
	_, err := c.db.Exec(
		`INSERT INTO fetches (pid, bibtex, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(pid) DO UPDATE SET bibtex = excluded.bibtex, fetched_at = excluded.fetched_at`,
		pid, bibtex, c.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}
