package guests

import (
	guestsdomain "wedding-registry-go/internal/domain/guests"
	"wedding-registry-go/pkg/logger"
)

type Handlers struct {
	Guests *guestsdomain.Service
	log    logger.Logger
}

func New(guests *guestsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Guests: guests,
		log:    log,
	}
}
