package guests

import (
	"errors"
	"fmt"
)

var (
	ErrGuestNotFound    = errors.New("guest not found")
	ErrNoMatch          = errors.New("no guest matches that name")
	ErrQueryTooShort    = errors.New("name query too short")
	ErrResponseRequired = errors.New("response is required")
	ErrInvalidResponse  = errors.New("invalid response")
	ErrInvalidSide      = errors.New("invalid side")
	ErrEmptyName        = errors.New("guest name is required")
	ErrEmptyDirectory   = errors.New("guest list is empty")
)

// EntryError points at the import row that could not be turned into a guest.
type EntryError struct {
	Row  int
	Name string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("row %d (%q): %v", e.Row, e.Name, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
