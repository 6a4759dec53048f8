package cache

import (
	"sync"
	"time"
)

const (
	// DefaultMaxSizeBytes bounds the store's cumulative entry size.
	DefaultMaxSizeBytes = 50 * 1024 * 1024

	defaultSweepInterval = 5 * time.Minute
)

// Store is the in-memory entry store: thread-safe, TTL-expiring, with a soft
// capacity bound enforced by write-time eviction.
//
// Eviction order is ascending entry timestamp, i.e. oldest-created-or-last-
// replaced first. This is deliberately not access-time LRU: reading an entry
// does not protect it from eviction.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	size    int64
	maxSize int64

	sweepInterval time.Duration
	stopSweep     chan struct{}
	closeOnce     sync.Once
}

// StoreOption is a functional option for configuring the Store.
type StoreOption func(*Store)

// WithMaxSizeBytes sets the soft capacity bound.
func WithMaxSizeBytes(n int64) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// WithSweepInterval sets how often the background sweep removes expired
// entries (default 5 minutes).
func WithSweepInterval(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// NewStore creates a Store and starts its background sweep goroutine.
// Callers must Close the store to stop the sweep.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries:       make(map[string]*Entry),
		maxSize:       DefaultMaxSizeBytes,
		sweepInterval: defaultSweepInterval,
		stopSweep:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.sweepLoop()

	return s
}

// GetEntry returns the entry for key if present and not expired. An expired
// entry is deleted as a side effect and reported as a miss.
func (s *Store) GetEntry(key string) (*Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if entry.Expired(time.Now()) {
		s.removeLocked(key, entry)
		return nil, false, nil
	}
	return entry, true, nil
}

// SetEntry stores or replaces the entry for key. If the cumulative size
// would exceed the configured maximum, entries are evicted in ascending
// timestamp order until the new entry fits. SetEntry never fails; eviction
// is unconditional and silent.
func (s *Store) SetEntry(key string, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[key]; ok {
		s.removeLocked(key, old)
	}

	for s.size+int64(e.SizeBytes) > s.maxSize && len(s.entries) > 0 {
		s.evictOldestLocked()
	}

	s.entries[key] = e
	s.size += int64(e.SizeBytes)
	return nil
}

// Delete removes the entry for key if present.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok {
		s.removeLocked(key, entry)
	}
	return nil
}

// Clear removes all entries and resets the cumulative size to zero.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*Entry)
	s.size = 0
	return nil
}

// Stats returns the store's entry count, cumulative size and capacity.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Entries:      len(s.entries),
		SizeBytes:    s.size,
		MaxSizeBytes: s.maxSize,
		Strategy:     StrategyMemory,
	}
}

// Snapshot returns a copy of all non-expired entries, keyed as stored.
// Cache export uses it.
func (s *Store) Snapshot() map[string]*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	result := make(map[string]*Entry, len(s.entries))
	for key, entry := range s.entries {
		if entry.Expired(now) {
			continue
		}
		result[key] = entry
	}
	return result
}

// Close stops the background sweep. The store remains usable afterwards;
// expired entries are then only removed on Get.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopSweep)
	})
	return nil
}

func (s *Store) sweepLoop() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopSweep:
			return
		}
	}
}

// sweep proactively removes all expired entries, independent of Get calls.
func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if entry.Expired(now) {
			s.removeLocked(key, entry)
		}
	}
}

// evictOldestLocked removes the entry with the smallest timestamp.
func (s *Store) evictOldestLocked() {
	var oldestKey string
	var oldest *Entry
	for key, entry := range s.entries {
		if oldest == nil || entry.Timestamp < oldest.Timestamp {
			oldestKey = key
			oldest = entry
		}
	}
	if oldest != nil {
		s.removeLocked(oldestKey, oldest)
	}
}

func (s *Store) removeLocked(key string, entry *Entry) {
	delete(s.entries, key)
	s.size -= int64(entry.SizeBytes)
	if s.size < 0 {
		s.size = 0
	}
}
