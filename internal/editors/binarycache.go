package editors

import (
	"sync"
	"time"
)

// binaryCacheTTL matches the spec's per-editor binary cache lifetime.
const binaryCacheTTL = 5 * time.Minute

// binaryCache remembers the last discovered binary path for an editor so
// repeated launches don't re-walk install directories on every call.
// Invalidated after the TTL, and explicitly on launch failure.
type binaryCache struct {
	mu        sync.RWMutex
	path      string
	found     bool
	cachedAt  time.Time
}

func (c *binaryCache) get() (string, bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cachedAt.IsZero() || time.Since(c.cachedAt) >= binaryCacheTTL {
		return "", false, false
	}
	return c.path, c.found, true
}

func (c *binaryCache) set(path string, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path, c.found, c.cachedAt = path, found, time.Now()
}

func (c *binaryCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cachedAt = time.Time{}
}
