package auth

import (
	"sync"
)

// cardEntry is a visitor's card plus its expiry. mu serialises requests of the
// same visitor.
type cardEntry struct {
	mu        sync.Mutex
	card      *Card
	expiresAt int64
}

type cardCache struct {
	mu    sync.RWMutex
	items map[string]*cardEntry
}

func newCardCache() *cardCache {
	return &cardCache{
		items: make(map[string]*cardEntry),
	}
}

func (c *cardCache) set(id string, e *cardEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[id] = e
}

func (c *cardCache) get(id string) (*cardEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[id]
	return e, ok
}

func (c *cardCache) delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
}

func (c *cardCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// purge drops every entry expired at now and returns how many were removed.
func (c *cardCache) purge(now int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.items {
		e.mu.Lock()
		expired := e.expiresAt < now
		e.mu.Unlock()
		if expired {
			delete(c.items, k)
			n++
		}
	}
	return n
}
