package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Config holds cache service configuration.
type Config struct {
	Strategy      Strategy      // default: memory
	Dir           string        // cache directory for disk and hybrid
	MaxSizeBytes  int64         // memory store capacity (0 = default)
	SweepInterval time.Duration // expiry sweep interval (0 = default 5m)
	Redis         RedisConfig   // redis strategy settings
}

// Service presents a uniform get/set/delete/clear surface over the selected
// strategy. Tier I/O failures are logged and downgraded to cache misses:
// caching is an optimization, never a correctness dependency, so no such
// failure reaches the caller.
type Service struct {
	strategy Strategy
	store    *Store      // memory and hybrid
	disk     *DiskCache  // disk and hybrid
	redis    *RedisCache // redis
	logger   *slog.Logger
}

// NewService builds a Service for the configured strategy. A nil logger
// falls back to slog.Default().
func NewService(cfg Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	strategy := cfg.Strategy
	if strategy == "" {
		strategy = StrategyMemory
	}

	svc := &Service{strategy: strategy, logger: logger}

	storeOpts := []StoreOption{}
	if cfg.MaxSizeBytes > 0 {
		storeOpts = append(storeOpts, WithMaxSizeBytes(cfg.MaxSizeBytes))
	}
	if cfg.SweepInterval > 0 {
		storeOpts = append(storeOpts, WithSweepInterval(cfg.SweepInterval))
	}

	switch strategy {
	case StrategyMemory:
		svc.store = NewStore(storeOpts...)
	case StrategyDisk:
		disk, err := NewDiskCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		svc.disk = disk
	case StrategyHybrid:
		disk, err := NewDiskCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		svc.disk = disk
		svc.store = NewStore(storeOpts...)
	case StrategyRedis:
		rc, err := NewRedisCache(cfg.Redis)
		if err != nil {
			return nil, err
		}
		svc.redis = rc
	default:
		return nil, fmt.Errorf("unknown cache strategy %q", strategy)
	}

	return svc, nil
}

// NewMemoryService is a convenience constructor for the memory strategy.
func NewMemoryService(opts ...StoreOption) *Service {
	return &Service{
		strategy: StrategyMemory,
		store:    NewStore(opts...),
		logger:   slog.Default(),
	}
}

// Strategy returns the configured strategy name.
func (s *Service) Strategy() Strategy {
	return s.strategy
}

// Set serializes value and stores it under key with the given TTL. The only
// possible failure is an unserializable value; tier I/O errors are absorbed.
func (s *Service) Set(key string, value any, ttlSeconds int) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializing cache value for %q: %w", key, err)
	}
	entry := NewEntry(data, ttlSeconds)

	if s.store != nil {
		_ = s.store.SetEntry(key, entry)
	}
	if s.disk != nil {
		if err := s.disk.SetEntry(key, entry); err != nil {
			s.logger.Warn("disk cache write failed", "key", key, "error", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.SetEntry(key, entry); err != nil {
			s.logger.Warn("redis cache write failed", "key", key, "error", err)
		}
	}
	return nil
}

// Get returns the serialized value for key, or false on a miss. Under the
// hybrid strategy a disk hit repopulates memory with the original entry, so
// the promoted copy keeps its original timestamp and TTL.
func (s *Service) Get(key string) (json.RawMessage, bool) {
	if s.store != nil {
		if entry, ok, _ := s.store.GetEntry(key); ok {
			return entry.Data, true
		}
	}

	if s.disk != nil {
		entry, ok, err := s.disk.GetEntry(key)
		if err != nil {
			s.logger.Warn("disk cache read failed", "key", key, "error", err)
			return nil, false
		}
		if !ok {
			return nil, false
		}
		if s.store != nil {
			_ = s.store.SetEntry(key, entry)
		}
		return entry.Data, true
	}

	if s.redis != nil {
		entry, ok, err := s.redis.GetEntry(key)
		if err != nil {
			s.logger.Warn("redis cache read failed", "key", key, "error", err)
			return nil, false
		}
		if !ok {
			return nil, false
		}
		return entry.Data, true
	}

	return nil, false
}

// GetJSON deserializes the value for key into dest. A value that no longer
// unmarshals is treated as a miss.
func (s *Service) GetJSON(key string, dest any) bool {
	data, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("cache value unmarshal failed", "key", key, "error", err)
		return false
	}
	return true
}

// Delete removes key from every configured tier.
func (s *Service) Delete(key string) {
	if s.store != nil {
		_ = s.store.Delete(key)
	}
	if s.disk != nil {
		if err := s.disk.Delete(key); err != nil {
			s.logger.Warn("disk cache delete failed", "key", key, "error", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Delete(key); err != nil {
			s.logger.Warn("redis cache delete failed", "key", key, "error", err)
		}
	}
}

// Clear removes all entries from every configured tier.
func (s *Service) Clear() {
	if s.store != nil {
		_ = s.store.Clear()
	}
	if s.disk != nil {
		if err := s.disk.Clear(); err != nil {
			s.logger.Warn("disk cache clear failed", "error", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Clear(); err != nil {
			s.logger.Warn("redis cache clear failed", "error", err)
		}
	}
}

// Stats reports the service's entry count and size under its strategy name.
// Memory-backed strategies report the store's accounting; disk reports a
// directory scan (expired files included, since they stay in place).
func (s *Service) Stats() Stats {
	switch {
	case s.store != nil:
		stats := s.store.Stats()
		stats.Strategy = s.strategy
		return stats
	case s.disk != nil:
		stats := s.disk.Stats()
		stats.Strategy = s.strategy
		return stats
	default:
		return Stats{Strategy: s.strategy}
	}
}

// Close stops the memory store's sweep and closes the redis connection.
func (s *Service) Close() error {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
