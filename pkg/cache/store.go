package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	query_hash TEXT PRIMARY KEY,
	query      TEXT NOT NULL,
	results    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL,
	hit_count  INTEGER NOT NULL DEFAULT 0,
	source     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cache_expires ON cache_entries(expires_at);
`

// storeTier is the durable sqlite tier.
type storeTier struct {
	db *sql.DB
}

// newStoreTier opens (creating if necessary) the cache database at path.
func newStoreTier(path string) (*storeTier, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store %q: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise cache schema: %w", err)
	}
	return &storeTier{db: db}, nil
}

// get loads the entry for hash. Expired entries are deleted and reported
// as a miss.
func (s *storeTier) get(hash string, now time.Time) (*Entry, error) {
	row := s.db.QueryRow(`
		SELECT query, results, created_at, expires_at, hit_count, source
		FROM cache_entries WHERE query_hash = ?`, hash)

	var (
		entry     Entry
		results   string
		createdAt int64
		expiresAt int64
		source    string
	)
	err := row.Scan(&entry.Query, &results, &createdAt, &expiresAt, &entry.HitCount, &source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store tier read %s: %w", hash, err)
	}

	entry.QueryHash = hash
	entry.CreatedAt = time.Unix(createdAt, 0)
	entry.ExpiresAt = time.Unix(expiresAt, 0)
	entry.Source = ResultSource(source)
	if entry.Expired(now) {
		s.db.Exec(`DELETE FROM cache_entries WHERE query_hash = ?`, hash)
		return nil, nil
	}
	if err := json.Unmarshal([]byte(results), &entry.Results); err != nil {
		s.db.Exec(`DELETE FROM cache_entries WHERE query_hash = ?`, hash)
		return nil, fmt.Errorf("store tier decode %s: %w", hash, err)
	}
	return &entry, nil
}

// put inserts or replaces the entry.
func (s *storeTier) put(entry *Entry) error {
	results, err := json.Marshal(entry.Results)
	if err != nil {
		return fmt.Errorf("store tier encode %s: %w", entry.QueryHash, err)
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO cache_entries
			(query_hash, query, results, created_at, expires_at, hit_count, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.QueryHash, entry.Query, string(results),
		entry.CreatedAt.Unix(), entry.ExpiresAt.Unix(), entry.HitCount, string(entry.Source),
	)
	if err != nil {
		return fmt.Errorf("store tier write %s: %w", entry.QueryHash, err)
	}
	return nil
}

// delete removes the entry if present.
func (s *storeTier) delete(hash string) error {
	if _, err := s.db.Exec(`DELETE FROM cache_entries WHERE query_hash = ?`, hash); err != nil {
		return fmt.Errorf("store tier delete %s: %w", hash, err)
	}
	return nil
}

// cleanup removes expired rows and returns how many were dropped.
func (s *storeTier) cleanup(now time.Time) (int, error) {
	res, err := s.db.Exec(`DELETE FROM cache_entries WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("store tier cleanup: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// count returns the number of rows.
func (s *storeTier) count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM cache_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store tier count: %w", err)
	}
	return n, nil
}

// clear removes all rows.
func (s *storeTier) clear() error {
	if _, err := s.db.Exec(`DELETE FROM cache_entries`); err != nil {
		return fmt.Errorf("store tier clear: %w", err)
	}
	return nil
}

// close releases the database.
func (s *storeTier) close() error {
	return s.db.Close()
}
