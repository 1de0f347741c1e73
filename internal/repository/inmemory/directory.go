package inmemory

import (
	"context"
	"sync"
	"time"

	guestsdomain "wedding-registry-go/internal/domain/guests"
)

// DirectoryCache keeps one directory snapshot with an expiry.
type DirectoryCache struct {
	mu        sync.RWMutex
	value     []guestsdomain.Guest
	expiresAt time.Time
	now       func() time.Time
}

func NewDirectoryCache() *DirectoryCache {
	return &DirectoryCache{now: time.Now}
}

func (c *DirectoryCache) GetDirectory(context.Context) ([]guestsdomain.Guest, bool) {
	now := c.now()

	c.mu.RLock()
	value, expiresAt := c.value, c.expiresAt
	c.mu.RUnlock()
	if value == nil {
		return nil, false
	}

	if !expiresAt.After(now) {
		c.mu.Lock()
		if c.value != nil && !c.expiresAt.After(now) {
			c.value = nil
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneGuests(value), true
}

func (c *DirectoryCache) SetDirectory(ctx context.Context, directory []guestsdomain.Guest, ttl time.Duration) {
	if ttl <= 0 || directory == nil {
		c.Invalidate(ctx)
		return
	}

	c.mu.Lock()
	c.value = cloneGuests(directory)
	c.expiresAt = c.now().Add(ttl)
	c.mu.Unlock()
}

func (c *DirectoryCache) Invalidate(context.Context) {
	c.mu.Lock()
	c.value = nil
	c.mu.Unlock()
}

func cloneGuests(directory []guestsdomain.Guest) []guestsdomain.Guest {
	if directory == nil {
		return nil
	}
	cloned := make([]guestsdomain.Guest, len(directory))
	for i := range directory {
		cloned[i] = directory[i].Clone()
	}
	return cloned
}
