package lockers

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"dronetrack/internal/domain"
)

type resolver interface {
	Resolve(ctx context.Context, lockerID string) (domain.Locker, error)
}

// Cache is a read-through locker cache. Errors are never cached; a failed
// lookup is retried on the next call. Concurrent misses for the same id
// share one fetch.
type Cache struct {
	next resolver

	mu     sync.RWMutex
	byID   map[string]domain.Locker
	lookup singleflight.Group
}

// NewCache wraps next with an in-memory cache. Returns nil when next is nil.
func NewCache(next resolver) *Cache {
	if next == nil {
		return nil
	}
	return &Cache{
		next: next,
		byID: make(map[string]domain.Locker),
	}
}

// Resolve returns the cached locker or fetches it through the underlying
// gateway.
func (c *Cache) Resolve(ctx context.Context, lockerID string) (domain.Locker, error) {
	c.mu.RLock()
	l, ok := c.byID[lockerID]
	c.mu.RUnlock()
	if ok {
		return l, nil
	}

	v, err, _ := c.lookup.Do(lockerID, func() (any, error) {
		c.mu.RLock()
		l, ok := c.byID[lockerID]
		c.mu.RUnlock()
		if ok {
			return l, nil
		}

		l, err := c.next.Resolve(ctx, lockerID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.byID[lockerID] = l
		c.mu.Unlock()
		return l, nil
	})
	if err != nil {
		return domain.Locker{}, err
	}
	return v.(domain.Locker), nil
}

// Invalidate drops one locker from the cache.
func (c *Cache) Invalidate(lockerID string) {
	c.mu.Lock()
	delete(c.byID, lockerID)
	c.mu.Unlock()
}
