package guests

import (
	"context"
	"time"
)

// Cache holds the last loaded directory snapshot. Implementations treat
// errors as misses; the repository stays the source of truth.
type Cache interface {
	GetDirectory(ctx context.Context) ([]Guest, bool)
	SetDirectory(ctx context.Context, directory []Guest, ttl time.Duration)
	Invalidate(ctx context.Context)
}

type noopCache struct{}

func (noopCache) GetDirectory(context.Context) ([]Guest, bool) {
	return nil, false
}

func (noopCache) SetDirectory(context.Context, []Guest, time.Duration) {}

func (noopCache) Invalidate(context.Context) {}
