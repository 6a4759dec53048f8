package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const diskFileExt = ".json"

// DiskCache persists entries as one JSON file per sanitized key inside a
// configured directory. Expired files are left in place until overwritten or
// cleared; only Get re-checks the TTL.
type DiskCache struct {
	dir string
}

// NewDiskCache creates the cache directory if needed and returns a DiskCache.
func NewDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (d *DiskCache) Dir() string {
	return d.dir
}

// GetEntry reads and deserializes the entry for key. Expired entries are
// reported as misses but the file is not removed.
func (d *DiskCache) GetEntry(key string) (*Entry, bool, error) {
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache file: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("decoding cache file: %w", err)
	}
	if entry.Expired(time.Now()) {
		return nil, false, nil
	}
	return &entry, true, nil
}

// SetEntry serializes the entry and writes it under the key's file.
func (d *DiskCache) SetEntry(key string, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := os.WriteFile(d.path(key), data, 0o600); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Delete removes the key's file if present.
func (d *DiskCache) Delete(key string) error {
	if err := os.Remove(d.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cache file: %w", err)
	}
	return nil
}

// Clear removes every cache file in the directory.
func (d *DiskCache) Clear() error {
	matches, err := filepath.Glob(filepath.Join(d.dir, "*"+diskFileExt))
	if err != nil {
		return fmt.Errorf("listing cache files: %w", err)
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing cache file: %w", err)
		}
	}
	return nil
}

// Stats counts the cache files currently on disk, expired ones included.
func (d *DiskCache) Stats() Stats {
	stats := Stats{Strategy: StrategyDisk}
	matches, err := filepath.Glob(filepath.Join(d.dir, "*"+diskFileExt))
	if err != nil {
		return stats
	}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		stats.Entries++
		stats.SizeBytes += info.Size()
	}
	return stats
}

const maxFilenameStem = 64

// path maps a cache key to a file path. The key is sanitized to a safe
// filename and suffixed with a short hash so distinct keys that sanitize to
// the same text cannot collide.
func (d *DiskCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))

	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		if b.Len() >= maxFilenameStem {
			break
		}
	}

	name := b.String() + "-" + hex.EncodeToString(sum[:4]) + diskFileExt
	return filepath.Join(d.dir, name)
}
