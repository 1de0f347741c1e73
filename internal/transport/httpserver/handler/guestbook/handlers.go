package guestbook

import (
	"net/http"

	guestbookdomain "wedding-registry-go/internal/domain/guestbook"
	commonhandler "wedding-registry-go/internal/transport/httpserver/handler/common"
	"wedding-registry-go/pkg/logger"
)

type Handlers struct {
	Guestbook *guestbookdomain.Service
	log       logger.Logger
}

func New(guestbook *guestbookdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Guestbook: guestbook,
		log:       log,
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return commonhandler.DecodeJSON(w, r, dst)
}

func writeDecodeError(w http.ResponseWriter, err error) {
	commonhandler.WriteDecodeError(w, err)
}
