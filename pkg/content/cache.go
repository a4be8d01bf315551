package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/patrickmn/go-cache"
)

// Keys under which the last good document is persisted
const (
	CacheKeyContent  = "bus_route_content"
	CacheKeyCachedAt = "bus_route_cached_at"
)

// LocalCache is a best-effort durable key/value store
type LocalCache interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// MemoryCache keeps entries in a go-cache instance and, when a snapshot path is
// set, mirrors them to disk after every write so they survive restarts.
type MemoryCache struct {
	items    *cache.Cache
	snapshot string
	mu       sync.Mutex
}

// NewMemoryCache creates a cache, restoring a previous snapshot if one exists
func NewMemoryCache(snapshot string) (*MemoryCache, error) {
	c := &MemoryCache{
		items:    cache.New(cache.NoExpiration, 0),
		snapshot: snapshot,
	}
	if snapshot == "" {
		return c, nil
	}

	if err := c.items.LoadFile(snapshot); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to restore cache snapshot %s: %w", snapshot, err)
	}
	return c, nil
}

// Get implements LocalCache
func (c *MemoryCache) Get(key string) (string, bool, error) {
	value, found := c.items.Get(key)
	if !found {
		return "", false, nil
	}
	s, ok := value.(string)
	if !ok {
		return "", false, fmt.Errorf("unexpected cache value type %T for %s", value, key)
	}
	return s, true, nil
}

// Set implements LocalCache
func (c *MemoryCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Set(key, value, cache.NoExpiration)
	if c.snapshot == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.snapshot), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return c.items.SaveFile(c.snapshot)
}

// NoCache never stores anything
type NoCache struct{}

// Get implements LocalCache
func (NoCache) Get(string) (string, bool, error) { return "", false, nil }

// Set implements LocalCache
func (NoCache) Set(string, string) error { return errors.New("cache disabled") }
