package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fileTier stores one JSON file per entry under
// <dir>/<first two hex chars>/<hash>.json. The two-character prefix shards
// entries across subdirectories to avoid huge flat directories.
type fileTier struct {
	dir string
}

func newFileTier(dir string) *fileTier {
	return &fileTier{dir: dir}
}

// path returns the sharded file path for a hash.
func (f *fileTier) path(hash string) string {
	shard := "00"
	if len(hash) >= 2 {
		shard = hash[:2]
	}
	return filepath.Join(f.dir, shard, hash+".json")
}

// get loads the entry for hash. Expired entries are removed and reported
// as a miss. All errors are returned to the caller for logging; the caller
// treats them as a miss.
func (f *fileTier) get(hash string, now time.Time) (*Entry, error) {
	data, err := os.ReadFile(f.path(hash))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("file tier read %s: %w", hash, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt entry: drop it so the slot heals on the next write.
		os.Remove(f.path(hash))
		return nil, fmt.Errorf("file tier decode %s: %w", hash, err)
	}
	if entry.Expired(now) {
		os.Remove(f.path(hash))
		return nil, nil
	}
	return &entry, nil
}

// put writes the entry as JSON, creating the shard directory as needed.
func (f *fileTier) put(hash string, entry *Entry) error {
	p := f.path(hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("file tier mkdir: %w", err)
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("file tier encode %s: %w", hash, err)
	}
	// Write-then-rename keeps readers from observing partial entries.
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("file tier write %s: %w", hash, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("file tier rename %s: %w", hash, err)
	}
	return nil
}

// delete removes the entry file if present.
func (f *fileTier) delete(hash string) error {
	err := os.Remove(f.path(hash))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file tier delete %s: %w", hash, err)
	}
	return nil
}

// cleanup walks the shard directories removing expired entries. It returns
// how many files were removed.
func (f *fileTier) cleanup(now time.Time) (int, error) {
	var removed int
	err := filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil || entry.Expired(now) {
			if os.Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("file tier cleanup: %w", err)
	}
	return removed, nil
}

// stats returns the number of entry files and their total size.
func (f *fileTier) stats() (count int, bytes int64) {
	filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		if info, err := d.Info(); err == nil {
			count++
			bytes += info.Size()
		}
		return nil
	})
	return count, bytes
}

// clear removes all entry files.
func (f *fileTier) clear() error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("file tier clear: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() && len(e.Name()) == 2 {
			os.RemoveAll(filepath.Join(f.dir, e.Name()))
		}
	}
	return nil
}
