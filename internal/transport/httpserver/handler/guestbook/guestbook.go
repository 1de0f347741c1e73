package guestbook

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	guestbookdomain "wedding-registry-go/internal/domain/guestbook"
	commonhandler "wedding-registry-go/internal/transport/httpserver/handler/common"
)

type signRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type listResponse struct {
	Items []guestbookdomain.Entry `json:"items"`
}

func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Guestbook.List(r.Context())
	if err != nil {
		h.log.InternalError("guestbook.list: list entries failed", err)
		commonhandler.WriteInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: entries})
}

func (h *Handlers) Sign(w http.ResponseWriter, r *http.Request) {
	var req signRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	entry, err := h.Guestbook.Sign(r.Context(), req.Name, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, guestbookdomain.ErrNameRequired), errors.Is(err, guestbookdomain.ErrMessageRequired):
			writeError(w, http.StatusBadRequest, "missing_fields", "Please add your name and a message.")
		case errors.Is(err, guestbookdomain.ErrNameTooLong):
			writeError(w, http.StatusBadRequest, "name_too_long", "Please keep your name under 100 characters.")
		case errors.Is(err, guestbookdomain.ErrMessageTooLong):
			writeError(w, http.StatusBadRequest, "message_too_long", "Please keep your message under 1000 characters.")
		default:
			h.log.InternalError("guestbook.sign: create entry failed", err)
			commonhandler.WriteInternalError(w)
		}
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Guestbook.Delete(r.Context(), id); err != nil {
		if errors.Is(err, guestbookdomain.ErrEntryNotFound) {
			h.log.BusinessError("guestbook.delete: entry not found", err, "entry_id", id)
			writeError(w, http.StatusNotFound, "entry_not_found", "entry not found")
			return
		}
		h.log.InternalError("guestbook.delete: delete entry failed", err, "entry_id", id)
		commonhandler.WriteInternalError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
