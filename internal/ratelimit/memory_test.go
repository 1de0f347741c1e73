package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreBlocksAfterLimit(t *testing.T) {
	now := time.Date(2026, 6, 20, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res, err := store.Allow(ctx, "auth:203.0.113.7", 5, 15*time.Minute)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !res.Allowed || res.Remaining != 4-i {
			t.Fatalf("attempt %d: expected allowed with %d remaining, got %+v", i+1, 4-i, res)
		}
		now = now.Add(time.Minute)
	}

	res, _ := store.Allow(ctx, "auth:203.0.113.7", 5, 15*time.Minute)
	if res.Allowed {
		t.Fatalf("expected sixth attempt to be blocked")
	}
	if want := time.Date(2026, 6, 20, 12, 15, 0, 0, time.UTC); !res.ResetAt.Equal(want) {
		t.Fatalf("expected reset at %s, got %s", want, res.ResetAt)
	}
	if got := res.RetryAfter(now); got != 10*time.Minute {
		t.Fatalf("expected retry after 10m, got %s", got)
	}

	res, _ = store.Allow(ctx, "auth:198.51.100.2", 5, 15*time.Minute)
	if !res.Allowed {
		t.Fatalf("expected other address to be unaffected")
	}
}

func TestMemoryStoreSlidesWindow(t *testing.T) {
	now := time.Date(2026, 6, 20, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if res, _ := store.Allow(ctx, "k", 2, time.Minute); !res.Allowed {
			t.Fatalf("expected attempt %d allowed", i+1)
		}
	}
	if res, _ := store.Allow(ctx, "k", 2, time.Minute); res.Allowed {
		t.Fatalf("expected third attempt blocked")
	}

	now = now.Add(time.Minute + time.Second)
	res, _ := store.Allow(ctx, "k", 2, time.Minute)
	if !res.Allowed || res.Remaining != 1 {
		t.Fatalf("expected window to reopen, got %+v", res)
	}
	if len(store.windows) != 1 {
		t.Fatalf("expected expired keys swept, got %d", len(store.windows))
	}
}
