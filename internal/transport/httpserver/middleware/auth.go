package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"wedding-registry-go/internal/auth"
	"wedding-registry-go/pkg/logger"
)

type contextKey int

const roleKey contextKey = iota

// SessionAuth guards routes with the role carried by a bearer session token.
type SessionAuth struct {
	sessions *auth.Sessions
	log      logger.Logger
}

func NewSessionAuth(sessions *auth.Sessions, log logger.Logger) *SessionAuth {
	return &SessionAuth{sessions: sessions, log: log}
}

// Require lets the request through when the session role allows want.
func (a *SessionAuth) Require(want auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := a.sessions.Validate(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "session_expired", "Your session has expired. Please sign in again.")
					return
				}
				a.log.BusinessError("auth.middleware: invalid session", err, "path", r.URL.Path)
				unauthorized(w)
				return
			}

			if !claims.Role.Allows(want) {
				a.log.BusinessError("auth.middleware: role not allowed", auth.ErrForbidden,
					"role", string(claims.Role),
					"required", string(want),
					"path", r.URL.Path,
				)
				writeError(w, http.StatusForbidden, "forbidden", "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), claims.Role)))
		})
	}
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithRole(ctx context.Context, role auth.Role) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

func RoleFromContext(ctx context.Context) (auth.Role, bool) {
	role, ok := ctx.Value(roleKey).(auth.Role)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
