package guestbook

import "errors"

var (
	ErrEntryNotFound   = errors.New("guestbook entry not found")
	ErrNameRequired    = errors.New("name is required")
	ErrMessageRequired = errors.New("message is required")
	ErrNameTooLong     = errors.New("name too long")
	ErrMessageTooLong  = errors.New("message too long")
)
