package guests

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// LoadDirectory returns every guest in import order.
	LoadDirectory(ctx context.Context) ([]Guest, error)
	GetGuest(ctx context.Context, id string) (*Guest, error)
	// ApplyMutations writes the RSVP columns of each row; identity columns
	// are left alone.
	ApplyMutations(ctx context.Context, rows []Guest) error
	ReplaceDirectory(ctx context.Context, rows []Guest) error
}
