package guestbook

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxNameLength    = 100
	MaxMessageLength = 1000
)

type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return []Entry{}, nil
	}
	return entries, nil
}

func (s *Service) Sign(ctx context.Context, name, message string) (*Entry, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	switch {
	case name == "":
		return nil, ErrNameRequired
	case message == "":
		return nil, ErrMessageRequired
	case utf8.RuneCountInString(name) > MaxNameLength:
		return nil, ErrNameTooLong
	case utf8.RuneCountInString(message) > MaxMessageLength:
		return nil, ErrMessageTooLong
	}

	entry := Entry{
		ID:        s.newID(),
		Name:      name,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateEntry(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEntryNotFound
	}
	return s.repo.DeleteEntry(ctx, id)
}
