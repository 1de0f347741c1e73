package guests

import (
	"net/http"

	commonhandler "wedding-registry-go/internal/transport/httpserver/handler/common"
)

const (
	msgNameNotFound  = "Name not found on guest list. Please check spelling or contact the couple."
	msgGuestNotFound = "We couldn't find your invitation. Please look up your name again or contact the couple."
	msgInternal      = "Something went wrong. Please try again or contact the couple."
)

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

func writeInternal(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal_error", msgInternal)
}
