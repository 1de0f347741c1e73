package guests

import (
	"errors"
	"net/http"
	"strconv"

	guestsdomain "wedding-registry-go/internal/domain/guests"
)

type importRequest struct {
	Guests []guestsdomain.ImportEntry `json:"guests"`
}

type importResponse struct {
	DryRun  bool                       `json:"dry_run"`
	Summary guestsdomain.ImportSummary `json:"summary"`
}

type listGuestsResponse struct {
	Items []guestsdomain.Guest `json:"items"`
	Stats guestsdomain.Stats   `json:"stats"`
}

func (h *Handlers) ListGuests(w http.ResponseWriter, r *http.Request) {
	directory, err := h.Guests.Directory(r.Context())
	if err != nil {
		h.log.InternalError("guests.admin_list: load directory failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, listGuestsResponse{
		Items: directory,
		Stats: guestsdomain.Aggregate(directory),
	})
}

func (h *Handlers) AdminStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.Guests.GroupingReport(r.Context())
	if err != nil {
		h.log.InternalError("guests.admin_stats: build report failed", err)
		writeInternal(w)
		return
	}
	stats, err := h.Guests.Stats(r.Context())
	if err != nil {
		h.log.InternalError("guests.admin_stats: aggregate failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rsvp":      stats,
		"directory": report.Summary,
	})
}

func (h *Handlers) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.Guests.GroupingReport(r.Context())
	if err != nil {
		h.log.InternalError("guests.admin_report: build report failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Import replaces the whole guest list. ?dry_run=true validates and
// summarises without writing.
func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	dryRun := false
	if raw := r.URL.Query().Get("dry_run"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_dry_run", "dry_run must be true or false")
			return
		}
		dryRun = parsed
	}

	var req importRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	summary, err := h.Guests.ImportDirectory(r.Context(), req.Guests, dryRun)
	if err != nil {
		var entryErr *guestsdomain.EntryError
		switch {
		case errors.As(err, &entryErr):
			h.log.BusinessError("guests.admin_import: invalid row", err, "row", entryErr.Row)
			writeError(w, http.StatusBadRequest, "invalid_guest_row", entryErr.Error())
		case errors.Is(err, guestsdomain.ErrEmptyDirectory):
			h.log.BusinessError("guests.admin_import: empty guest list", err)
			writeError(w, http.StatusBadRequest, "empty_guest_list", "guest list is empty")
		default:
			h.log.InternalError("guests.admin_import: import failed", err, "entries", len(req.Guests))
			writeInternal(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, importResponse{DryRun: dryRun, Summary: summary})
}
