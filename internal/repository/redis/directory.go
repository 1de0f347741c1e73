package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	guestsdomain "wedding-registry-go/internal/domain/guests"
	"wedding-registry-go/pkg/logger"
)

const directoryKey = "wedding:guest_directory:v1"

// DirectoryCache shares the directory snapshot between instances. Redis
// failures are logged and reported as misses.
type DirectoryCache struct {
	client goredis.Cmdable
	key    string
	log    logger.Logger
}

func NewDirectoryCache(client goredis.Cmdable, log logger.Logger) *DirectoryCache {
	return &DirectoryCache{client: client, key: directoryKey, log: log}
}

func (c *DirectoryCache) GetDirectory(ctx context.Context) ([]guestsdomain.Guest, bool) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.InternalError("cache.directory: get failed", err)
		}
		return nil, false
	}

	var directory []guestsdomain.Guest
	if err := json.Unmarshal(raw, &directory); err != nil {
		c.log.InternalError("cache.directory: decode failed", err)
		return nil, false
	}
	return directory, true
}

func (c *DirectoryCache) SetDirectory(ctx context.Context, directory []guestsdomain.Guest, ttl time.Duration) {
	if ttl <= 0 || directory == nil {
		c.Invalidate(ctx)
		return
	}
	raw, err := json.Marshal(directory)
	if err != nil {
		c.log.InternalError("cache.directory: encode failed", err)
		return
	}
	if err := c.client.Set(ctx, c.key, raw, ttl).Err(); err != nil {
		c.log.InternalError("cache.directory: set failed", err)
	}
}

func (c *DirectoryCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		c.log.InternalError("cache.directory: invalidate failed", err)
	}
}
