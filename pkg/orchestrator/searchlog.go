package orchestrator

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"dslabs/dssearch/pkg/policy"
)

// maxLogEntries bounds the in-memory search log.
const maxLogEntries = 1000

// LogEntry is one handled request in the search log.
type LogEntry struct {
	ID       string        `json:"id"`
	Time     time.Time     `json:"time"`
	UserID   string        `json:"user_id,omitempty"`
	Query    string        `json:"query"`
	Intent   policy.Intent `json:"intent"`
	Score    float64       `json:"score"`
	Action   Action        `json:"action"`
	Source   string        `json:"source"`
	Results  int           `json:"results"`
	Duration time.Duration `json:"duration"`
}

// searchLog is a bounded ring of recent requests, optionally mirrored to a
// sqlite store. Safe for concurrent use.
type searchLog struct {
	mu      sync.Mutex
	entries []LogEntry
	next    int
	full    bool

	store *logStore
	log   *slog.Logger
}

func newSearchLog(storePath string, log *slog.Logger) *searchLog {
	sl := &searchLog{
		entries: make([]LogEntry, maxLogEntries),
		log:     log,
	}
	if storePath != "" {
		store, err := newLogStore(storePath)
		if err != nil {
			log.Warn("search log store unavailable, keeping log in memory only", "error", err)
		} else {
			sl.store = store
		}
	}
	return sl
}

// add appends an entry, evicting the oldest once the ring is full.
func (sl *searchLog) add(e LogEntry) {
	sl.mu.Lock()
	sl.entries[sl.next] = e
	sl.next = (sl.next + 1) % len(sl.entries)
	if sl.next == 0 {
		sl.full = true
	}
	store := sl.store
	sl.mu.Unlock()

	if store != nil {
		if err := store.insert(e); err != nil {
			sl.log.Warn("search log persist failed", "id", e.ID, "error", err)
		}
	}
}

// recent returns up to n entries, newest first.
func (sl *searchLog) recent(n int) []LogEntry {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	size := sl.next
	if sl.full {
		size = len(sl.entries)
	}
	if n <= 0 || n > size {
		n = size
	}

	out := make([]LogEntry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (sl.next - i + len(sl.entries)) % len(sl.entries)
		out = append(out, sl.entries[idx])
	}
	return out
}

func (sl *searchLog) close() error {
	if sl.store != nil {
		return sl.store.close()
	}
	return nil
}

// logStore mirrors the search log into sqlite so it survives restarts.
type logStore struct {
	db *sql.DB
}

func newLogStore(path string) (*logStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open search log store: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS search_logs (
	id          TEXT PRIMARY KEY,
	ts          INTEGER NOT NULL,
	user_id     TEXT,
	query       TEXT NOT NULL,
	intent      TEXT,
	score       REAL,
	action      TEXT,
	source      TEXT,
	results     INTEGER,
	duration_ms INTEGER
);
CREATE INDEX IF NOT EXISTS idx_search_logs_ts ON search_logs(ts);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init search log schema: %w", err)
	}
	return &logStore{db: db}, nil
}

func (s *logStore) insert(e LogEntry) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO search_logs
		 (id, ts, user_id, query, intent, score, action, source, results, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Time.Unix(), e.UserID, e.Query, string(e.Intent), e.Score,
		string(e.Action), e.Source, e.Results, e.Duration.Milliseconds(),
	)
	return err
}

func (s *logStore) close() error {
	return s.db.Close()
}
