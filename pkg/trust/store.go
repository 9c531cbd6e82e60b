package trust

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

const trustSchema = `
CREATE TABLE IF NOT EXISTS trusted_sources (
	domain        TEXT PRIMARY KEY,
	type          TEXT NOT NULL,
	display_name  TEXT NOT NULL DEFAULT '',
	priority      INTEGER NOT NULL,
	enabled       INTEGER NOT NULL,
	rate_limit    REAL NOT NULL DEFAULT 0,
	categories    TEXT NOT NULL DEFAULT '[]',
	last_crawled  INTEGER NOT NULL DEFAULT 0,
	success_rate  REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS blocked_domains (
	domain     TEXT PRIMARY KEY,
	blocked_at INTEGER NOT NULL
);
`

// SQLiteStore persists registry state to a sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the registry database at the
// given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trust store %q: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(trustSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise trust schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveSource inserts or replaces one source row.
func (s *SQLiteStore) SaveSource(src *TrustedSource) error {
	cats, err := json.Marshal(src.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}

	var lastCrawled int64
	if !src.LastCrawled.IsZero() {
		lastCrawled = src.LastCrawled.Unix()
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO trusted_sources
			(domain, type, display_name, priority, enabled, rate_limit, categories, last_crawled, success_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		src.Domain, string(src.Type), src.DisplayName, src.Priority,
		boolToInt(src.Enabled), src.RateLimit, string(cats), lastCrawled, src.SuccessRate,
	)
	if err != nil {
		return fmt.Errorf("failed to save source %q: %w", src.Domain, err)
	}
	return nil
}

// SaveBlocked records a blocked domain.
func (s *SQLiteStore) SaveBlocked(domain string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO blocked_domains (domain, blocked_at) VALUES (?, ?)`,
		domain, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save blocked domain %q: %w", domain, err)
	}
	return nil
}

// LoadAll returns all persisted sources and blocked domains.
func (s *SQLiteStore) LoadAll() ([]TrustedSource, []string, error) {
	rows, err := s.db.Query(`
		SELECT domain, type, display_name, priority, enabled, rate_limit, categories, last_crawled, success_rate
		FROM trusted_sources`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sources: %w", err)
	}
	defer rows.Close()

	var sources []TrustedSource
	for rows.Next() {
		var (
			src         TrustedSource
			typ         string
			enabled     int
			cats        string
			lastCrawled int64
		)
		if err := rows.Scan(&src.Domain, &typ, &src.DisplayName, &src.Priority,
			&enabled, &src.RateLimit, &cats, &lastCrawled, &src.SuccessRate); err != nil {
			return nil, nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		src.Type = SourceType(typ)
		src.Enabled = enabled != 0
		if lastCrawled > 0 {
			src.LastCrawled = time.Unix(lastCrawled, 0)
		}
		if err := json.Unmarshal([]byte(cats), &src.Categories); err != nil {
			src.Categories = nil
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate source rows: %w", err)
	}

	blockedRows, err := s.db.Query(`SELECT domain FROM blocked_domains`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load blocked domains: %w", err)
	}
	defer blockedRows.Close()

	var blocked []string
	for blockedRows.Next() {
		var d string
		if err := blockedRows.Scan(&d); err != nil {
			return nil, nil, fmt.Errorf("failed to scan blocked row: %w", err)
		}
		blocked = append(blocked, d)
	}
	if err := blockedRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate blocked rows: %w", err)
	}

	return sources, blocked, nil
}

// Close releases the store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
