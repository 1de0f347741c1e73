package auth

import "errors"

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidCode     = errors.New("invalid admin code")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token has expired")
	ErrForbidden       = errors.New("forbidden")
)
