package guests

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	guestsdomain "wedding-registry-go/internal/domain/guests"
)

type lookupRequest struct {
	Name string `json:"name"`
}

type guestResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	FamilyGroup  string                 `json:"family_group"`
	Side         guestsdomain.Side      `json:"side"`
	HasRSVPed    bool                   `json:"has_rsvped"`
	RSVPResponse *guestsdomain.Response `json:"rsvp_response"`
}

type familyMemberResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	HasRSVPed    bool                   `json:"has_rsvped"`
	RSVPResponse *guestsdomain.Response `json:"rsvp_response"`
}

type lookupResponse struct {
	Guest            guestResponse          `json:"guest"`
	FamilyMembers    []familyMemberResponse `json:"family_members"`
	CanRSVPForFamily bool                   `json:"can_rsvp_for_family"`
}

type familyRSVPRequest struct {
	GuestID   string  `json:"guest_id"`
	Attending string  `json:"attending"`
	Dietary   *string `json:"dietary"`
	Message   *string `json:"message"`
	Email     string  `json:"email"`
}

type rsvpRequest struct {
	GuestID     string              `json:"guest_id"`
	Attending   string              `json:"attending"`
	Email       string              `json:"email"`
	GuestCount  int                 `json:"guest_count"`
	Dietary     *string             `json:"dietary"`
	Message     *string             `json:"message"`
	FamilyRSVPs []familyRSVPRequest `json:"family_rsvps"`
}

type writtenRowResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	RSVPResponse *guestsdomain.Response `json:"rsvp_response"`
}

type rsvpResponse struct {
	Message string               `json:"message"`
	Guest   writtenRowResponse   `json:"guest"`
	Family  []writtenRowResponse `json:"family"`
	Skipped int                  `json:"skipped"`
}

type checkRSVPResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	HasRSVPed      bool                   `json:"has_rsvped"`
	RSVPResponse   *guestsdomain.Response `json:"rsvp_response"`
	RSVPGuestCount int                    `json:"rsvp_guest_count"`
	RSVPDate       *time.Time             `json:"rsvp_date"`
	RSVPBy         *string                `json:"rsvp_by"`
}

func (h *Handlers) Lookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := guestsdomain.ValidateQuery(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, "name_required", "Please enter your name")
		return
	}

	res, err := h.Guests.Lookup(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, guestsdomain.ErrNoMatch) {
			h.log.BusinessError("guests.lookup: name not found", err, "query_key", guestsdomain.Normalize(req.Name))
			writeError(w, http.StatusNotFound, "guest_not_found", msgNameNotFound)
			return
		}
		h.log.InternalError("guests.lookup: lookup failed", err)
		writeInternal(w)
		return
	}

	members := make([]familyMemberResponse, 0, len(res.FamilyMembers))
	for _, m := range res.FamilyMembers {
		members = append(members, familyMemberResponse{
			ID:           m.ID,
			Name:         m.Name,
			HasRSVPed:    m.HasRSVPed,
			RSVPResponse: m.RSVPResponse,
		})
	}
	writeJSON(w, http.StatusOK, lookupResponse{
		Guest: guestResponse{
			ID:           res.Guest.ID,
			Name:         res.Guest.Name,
			FamilyGroup:  res.Guest.FamilyGroup,
			Side:         res.Guest.Side,
			HasRSVPed:    res.Guest.HasRSVPed,
			RSVPResponse: res.Guest.RSVPResponse,
		},
		FamilyMembers:    members,
		CanRSVPForFamily: res.CanRSVPForFamily,
	})
}

func (h *Handlers) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	var req rsvpRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.GuestID) == "" {
		writeError(w, http.StatusBadRequest, "guest_id_required", "Guest ID and attendance response required")
		return
	}
	response, err := guestsdomain.ParseResponse(req.Attending)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_response", "Please choose yes, no or maybe.")
		return
	}

	sub := guestsdomain.Submission{
		GuestID:    req.GuestID,
		Response:   response,
		GuestCount: req.GuestCount,
		Dietary:    req.Dietary,
		Message:    req.Message,
		Email:      strings.TrimSpace(req.Email),
	}
	for _, f := range req.FamilyRSVPs {
		// Unparseable family answers are passed through empty and skipped by
		// the ledger rather than failing the whole submission.
		familyResponse, _ := guestsdomain.ParseResponse(f.Attending)
		sub.Family = append(sub.Family, guestsdomain.FamilyResponse{
			GuestID:  f.GuestID,
			Response: familyResponse,
			Dietary:  f.Dietary,
			Message:  f.Message,
			Email:    strings.TrimSpace(f.Email),
		})
	}

	result, err := h.Guests.SubmitRSVP(r.Context(), sub)
	if err != nil {
		if errors.Is(err, guestsdomain.ErrGuestNotFound) {
			h.log.BusinessError("guests.rsvp: guest not found", err, "guest_id", req.GuestID)
			writeError(w, http.StatusNotFound, "guest_not_found", msgGuestNotFound)
			return
		}
		h.log.InternalError("guests.rsvp: submit failed", err, "guest_id", req.GuestID)
		writeInternal(w)
		return
	}

	resp := rsvpResponse{
		Message: "RSVP submitted successfully!",
		Family:  make([]writtenRowResponse, 0, len(result.Written)),
		Skipped: len(result.Skipped),
	}
	for i, row := range result.Written {
		out := writtenRowResponse{ID: row.ID, Name: row.Name, RSVPResponse: row.RSVPResponse}
		if i == 0 {
			resp.Guest = out
			continue
		}
		resp.Family = append(resp.Family, out)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Guests.Stats(r.Context())
	if err != nil {
		h.log.InternalError("guests.stats: aggregate failed", err)
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) CheckRSVP(w http.ResponseWriter, r *http.Request) {
	guestID := chi.URLParam(r, "guest_id")

	guest, err := h.Guests.CheckRSVP(r.Context(), guestID)
	if err != nil {
		if errors.Is(err, guestsdomain.ErrGuestNotFound) {
			h.log.BusinessError("guests.check_rsvp: guest not found", err, "guest_id", guestID)
			writeError(w, http.StatusNotFound, "guest_not_found", msgGuestNotFound)
			return
		}
		h.log.InternalError("guests.check_rsvp: get guest failed", err, "guest_id", guestID)
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, checkRSVPResponse{
		ID:             guest.ID,
		Name:           guest.Name,
		HasRSVPed:      guest.HasRSVPed,
		RSVPResponse:   guest.RSVPResponse,
		RSVPGuestCount: guest.RSVPGuestCount,
		RSVPDate:       guest.RSVPDate,
		RSVPBy:         guest.RSVPBy,
	})
}
