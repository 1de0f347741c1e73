package inmemory

import (
	"context"
	"sort"
	"sync"

	guestbookdomain "wedding-registry-go/internal/domain/guestbook"
)

type GuestbookRepository struct {
	mu      sync.RWMutex
	entries map[string]guestbookdomain.Entry
}

func NewGuestbookRepository() *GuestbookRepository {
	return &GuestbookRepository{entries: make(map[string]guestbookdomain.Entry)}
}

func (r *GuestbookRepository) ListEntries(ctx context.Context) ([]guestbookdomain.Entry, error) {
	r.mu.RLock()
	entries := make([]guestbookdomain.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (r *GuestbookRepository) CreateEntry(ctx context.Context, entry *guestbookdomain.Entry) error {
	r.mu.Lock()
	r.entries[entry.ID] = *entry
	r.mu.Unlock()
	return nil
}

func (r *GuestbookRepository) DeleteEntry(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return guestbookdomain.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}
