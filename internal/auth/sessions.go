package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

// Allows reports whether r may use routes that require want. Admins can do
// anything a guest can.
func (r Role) Allows(want Role) bool {
	return r == want || (r == RoleAdmin && want == RoleGuest)
}

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

type Session struct {
	Token     string    `json:"token"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Sessions issues and checks HS256 tokens carrying a role.
type Sessions struct {
	signingKey []byte
	issuer     string
	ttl        map[Role]time.Duration
	now        func() time.Time
}

func NewSessions(signingKey, issuer string, guestTTL, adminTTL time.Duration) *Sessions {
	return &Sessions{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        map[Role]time.Duration{RoleGuest: guestTTL, RoleAdmin: adminTTL},
		now:        time.Now,
	}
}

func (s *Sessions) Issue(role Role) (Session, error) {
	ttl, ok := s.ttl[role]
	if !ok {
		return Session{}, ErrForbidden
	}
	now := s.now()
	expiresAt := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: signed, Role: role, ExpiresAt: expiresAt.UTC().Truncate(time.Second)}, nil
}

func (s *Sessions) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleGuest && claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
