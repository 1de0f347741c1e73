package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials checks the shared wedding password and the admin code. The
// password is case-insensitive; the admin code is compared upper-cased.
// Only bcrypt hashes are kept in memory.
type Credentials struct {
	passwordHash []byte
	adminHash    []byte
}

func NewCredentials(weddingPassword, adminCode string, cost int) (*Credentials, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	passwordHash, err := hashSecret(foldPassword(weddingPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash wedding password: %w", err)
	}
	adminHash, err := hashSecret(foldCode(adminCode), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin code: %w", err)
	}
	return &Credentials{passwordHash: passwordHash, adminHash: adminHash}, nil
}

func (c *Credentials) CheckGuestPassword(password string) error {
	return verify(c.passwordHash, foldPassword(password), ErrInvalidPassword)
}

func (c *Credentials) CheckAdminCode(code string) error {
	return verify(c.adminHash, foldCode(code), ErrInvalidCode)
}

func foldPassword(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func foldCode(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func hashSecret(secret string, cost int) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("secret cannot be empty")
	}
	return bcrypt.GenerateFromPassword([]byte(secret), cost)
}

func verify(hash []byte, secret string, mismatch error) error {
	if secret == "" {
		return mismatch
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return mismatch
		}
		return fmt.Errorf("verify secret: %w", err)
	}
	return nil
}
