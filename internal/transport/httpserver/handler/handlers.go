package handler

import (
	commonhandler "wedding-registry-go/internal/transport/httpserver/handler/common"
	guestbookhandler "wedding-registry-go/internal/transport/httpserver/handler/guestbook"
	guestshandler "wedding-registry-go/internal/transport/httpserver/handler/guests"
)

type Handlers struct {
	Common    *commonhandler.Handlers
	Guests    *guestshandler.Handlers
	Guestbook *guestbookhandler.Handlers
}

func New(common *commonhandler.Handlers, guests *guestshandler.Handlers, guestbook *guestbookhandler.Handlers) *Handlers {
	return &Handlers{
		Common:    common,
		Guests:    guests,
		Guestbook: guestbook,
	}
}
