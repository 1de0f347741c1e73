package guestbook

import "context"

type Repository interface {
	// ListEntries returns entries newest first.
	ListEntries(ctx context.Context) ([]Entry, error)
	CreateEntry(ctx context.Context, entry *Entry) error
	// DeleteEntry returns ErrEntryNotFound when nothing was removed.
	DeleteEntry(ctx context.Context, id string) error
}
