package inmemory

import (
	"context"
	"errors"
	"testing"
	"time"

	guestbookdomain "wedding-registry-go/internal/domain/guestbook"
	guestsdomain "wedding-registry-go/internal/domain/guests"
)

func testDirectory() []guestsdomain.Guest {
	return []guestsdomain.Guest{
		{ID: "b", Position: 1, Name: "John Wilson", FamilyGroup: "wilson_ann"},
		{ID: "a", Position: 0, Name: "Ann Wilson", FamilyGroup: "wilson_ann"},
	}
}

func TestDirectoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewDirectoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	if _, ok := cache.GetDirectory(ctx); ok {
		t.Fatalf("expected empty cache miss")
	}

	cache.SetDirectory(ctx, testDirectory(), time.Minute)
	got, ok := cache.GetDirectory(ctx)
	if !ok || len(got) != 2 {
		t.Fatalf("expected cached directory, got %v %v", got, ok)
	}

	got[0].Name = "changed"
	again, _ := cache.GetDirectory(ctx)
	if again[0].Name != "John Wilson" {
		t.Fatalf("expected cache to hand out copies, got %q", again[0].Name)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.GetDirectory(ctx); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestDirectoryCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	cache := NewDirectoryCache()

	cache.SetDirectory(ctx, testDirectory(), time.Minute)
	cache.Invalidate(ctx)
	if _, ok := cache.GetDirectory(ctx); ok {
		t.Fatalf("expected miss after invalidate")
	}

	cache.SetDirectory(ctx, testDirectory(), 0)
	if _, ok := cache.GetDirectory(ctx); ok {
		t.Fatalf("expected zero ttl to skip caching")
	}
}

func TestGuestsRepositoryOrderAndMutations(t *testing.T) {
	ctx := context.Background()
	repo := NewGuestsRepository()
	if err := repo.ReplaceDirectory(ctx, testDirectory()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	directory, err := repo.LoadDirectory(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if directory[0].ID != "a" {
		t.Fatalf("expected position order, got %s first", directory[0].ID)
	}

	yes := guestsdomain.ResponseYes
	row := directory[0]
	row.HasRSVPed = true
	row.RSVPResponse = &yes
	row.Name = "Renamed"
	if err := repo.ApplyMutations(ctx, []guestsdomain.Guest{row}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	stored, err := repo.GetGuest(ctx, "a")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !stored.HasRSVPed || stored.Name != "Ann Wilson" {
		t.Fatalf("expected RSVP columns only to change, got %+v", stored)
	}

	missing := guestsdomain.Guest{ID: "zzz"}
	if err := repo.ApplyMutations(ctx, []guestsdomain.Guest{missing}); !errors.Is(err, guestsdomain.ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound, got %v", err)
	}
}

func TestGuestsRepositoryTransactionRollback(t *testing.T) {
	ctx := context.Background()
	repo := NewGuestsRepository()
	_ = repo.ReplaceDirectory(ctx, testDirectory())

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx guestsdomain.Repository) error {
		if err := tx.ReplaceDirectory(ctx, nil); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	directory, _ := repo.LoadDirectory(ctx)
	if len(directory) != 2 {
		t.Fatalf("expected rollback to keep 2 guests, got %d", len(directory))
	}
}

func TestGuestbookRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGuestbookRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_ = repo.CreateEntry(ctx, &guestbookdomain.Entry{ID: "1", Name: "A", Message: "old", CreatedAt: base})
	_ = repo.CreateEntry(ctx, &guestbookdomain.Entry{ID: "2", Name: "B", Message: "new", CreatedAt: base.Add(time.Hour)})

	entries, _ := repo.ListEntries(ctx)
	if len(entries) != 2 || entries[0].ID != "2" {
		t.Fatalf("expected newest first, got %+v", entries)
	}

	if err := repo.DeleteEntry(ctx, "1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.DeleteEntry(ctx, "1"); !errors.Is(err, guestbookdomain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
