// Package cache provides the strategy-selectable cache backing catalog and
// template loads: an in-memory entry store with TTL expiry and size-bounded
// eviction, a disk tier of per-key JSON files, a redis tier, and a hybrid
// write-through combination of memory and disk.
package cache

import (
	"encoding/json"
	"time"
)

// Strategy selects which tiers a Service writes to and reads from.
type Strategy string

const (
	// StrategyMemory keeps entries only in the in-memory store.
	StrategyMemory Strategy = "memory"
	// StrategyDisk keeps entries only as JSON files on disk.
	StrategyDisk Strategy = "disk"
	// StrategyHybrid writes through to memory and disk, reads memory-first
	// with disk fallback and repopulation.
	StrategyHybrid Strategy = "hybrid"
	// StrategyRedis keeps entries in a redis instance.
	StrategyRedis Strategy = "redis"
)

// DefaultTTLSeconds is applied when a caller supplies a zero or negative
// TTL. There is no infinite sentinel; callers wanting effectively permanent
// entries supply a very large TTL.
const DefaultTTLSeconds = 3600

// Entry is one cached value plus the metadata needed for expiry and
// capacity accounting. Entries are replaced whole on Set, never merged.
type Entry struct {
	Data       json.RawMessage `json:"data"`
	Timestamp  int64           `json:"timestamp"` // creation or replacement time, epoch milliseconds
	TTLSeconds int             `json:"ttl_seconds"`
	SizeBytes  int             `json:"size_bytes"` // len(Data); used only for capacity accounting
}

// NewEntry builds an entry timestamped now. A non-positive ttlSeconds falls
// back to DefaultTTLSeconds.
func NewEntry(data []byte, ttlSeconds int) *Entry {
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultTTLSeconds
	}
	return &Entry{
		Data:       data,
		Timestamp:  time.Now().UnixMilli(),
		TTLSeconds: ttlSeconds,
		SizeBytes:  len(data),
	}
}

// Expired reports whether the entry has expired as of now.
func (e *Entry) Expired(now time.Time) bool {
	return now.UnixMilli()-e.Timestamp >= int64(e.TTLSeconds)*1000
}

// RemainingTTL returns how long the entry has left before expiry, in whole
// seconds rounded up. Expired entries return 0.
func (e *Entry) RemainingTTL(now time.Time) int {
	remainingMs := int64(e.TTLSeconds)*1000 - (now.UnixMilli() - e.Timestamp)
	if remainingMs <= 0 {
		return 0
	}
	return int((remainingMs + 999) / 1000)
}

// Tier is one storage tier of the cache service. Implementations report a
// miss for expired entries; whether the expired entry is removed eagerly is
// tier-specific (memory removes, disk leaves the file in place).
type Tier interface {
	GetEntry(key string) (*Entry, bool, error)
	SetEntry(key string, e *Entry) error
	Delete(key string) error
	Clear() error
}

// Stats describes the current shape of a cache.
type Stats struct {
	Entries      int      `json:"entries"`
	SizeBytes    int64    `json:"size_bytes"`
	MaxSizeBytes int64    `json:"max_size_bytes"`
	Strategy     Strategy `json:"strategy"`
}
