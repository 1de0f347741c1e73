package common

import (
	"context"

	"wedding-registry-go/internal/auth"
	"wedding-registry-go/pkg/logger"
)

// Pinger is a dependency the health check reports on.
type Pinger interface {
	Health(ctx context.Context) error
}

type Handlers struct {
	Credentials *auth.Credentials
	Sessions    *auth.Sessions
	pingers     map[string]Pinger
	log         logger.Logger
}

func New(credentials *auth.Credentials, sessions *auth.Sessions, pingers map[string]Pinger, log logger.Logger) *Handlers {
	return &Handlers{
		Credentials: credentials,
		Sessions:    sessions,
		pingers:     pingers,
		log:         log,
	}
}
