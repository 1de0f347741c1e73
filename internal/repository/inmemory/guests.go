package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	guestsdomain "wedding-registry-go/internal/domain/guests"
)

// GuestsRepository stores the directory in process memory. Transactions
// hold one lock for their whole callback and roll back on error.
type GuestsRepository struct {
	mu     sync.Mutex
	guests []guestsdomain.Guest
}

func NewGuestsRepository() *GuestsRepository {
	return &GuestsRepository{}
}

type guestsTx struct {
	repo *GuestsRepository
}

func (r *GuestsRepository) Transaction(ctx context.Context, fn func(guestsdomain.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := cloneGuests(r.guests)
	if err := fn(guestsTx{repo: r}); err != nil {
		r.guests = snapshot
		return err
	}
	return nil
}

func (r *GuestsRepository) LoadDirectory(ctx context.Context) ([]guestsdomain.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(), nil
}

func (r *GuestsRepository) GetGuest(ctx context.Context, id string) (*guestsdomain.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *GuestsRepository) ApplyMutations(ctx context.Context, rows []guestsdomain.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apply(rows)
}

func (r *GuestsRepository) ReplaceDirectory(ctx context.Context, rows []guestsdomain.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replace(rows)
	return nil
}

func (r *GuestsRepository) load() []guestsdomain.Guest {
	directory := cloneGuests(r.guests)
	if directory == nil {
		directory = []guestsdomain.Guest{}
	}
	sort.SliceStable(directory, func(i, j int) bool {
		return directory[i].Position < directory[j].Position
	})
	return directory
}

func (r *GuestsRepository) get(id string) (*guestsdomain.Guest, error) {
	for i := range r.guests {
		if r.guests[i].ID == id {
			guest := r.guests[i].Clone()
			return &guest, nil
		}
	}
	return nil, guestsdomain.ErrGuestNotFound
}

func (r *GuestsRepository) apply(rows []guestsdomain.Guest) error {
	now := time.Now().UTC()
	for _, row := range rows {
		idx := -1
		for i := range r.guests {
			if r.guests[i].ID == row.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return guestsdomain.ErrGuestNotFound
		}
		stored := &r.guests[idx]
		updated := row.Clone()
		stored.HasRSVPed = updated.HasRSVPed
		stored.RSVPResponse = updated.RSVPResponse
		stored.RSVPGuestCount = updated.RSVPGuestCount
		stored.RSVPDietary = updated.RSVPDietary
		stored.RSVPMessage = updated.RSVPMessage
		stored.RSVPDate = updated.RSVPDate
		stored.RSVPBy = updated.RSVPBy
		stored.UpdatedAt = now
	}
	return nil
}

func (r *GuestsRepository) replace(rows []guestsdomain.Guest) {
	now := time.Now().UTC()
	r.guests = cloneGuests(rows)
	for i := range r.guests {
		r.guests[i].CreatedAt = now
		r.guests[i].UpdatedAt = now
	}
}

// guestsTx runs against the already locked repository.
func (t guestsTx) Transaction(ctx context.Context, fn func(guestsdomain.Repository) error) error {
	return fn(t)
}

func (t guestsTx) LoadDirectory(context.Context) ([]guestsdomain.Guest, error) {
	return t.repo.load(), nil
}

func (t guestsTx) GetGuest(_ context.Context, id string) (*guestsdomain.Guest, error) {
	return t.repo.get(id)
}

func (t guestsTx) ApplyMutations(_ context.Context, rows []guestsdomain.Guest) error {
	return t.repo.apply(rows)
}

func (t guestsTx) ReplaceDirectory(_ context.Context, rows []guestsdomain.Guest) error {
	t.repo.replace(rows)
	return nil
}
