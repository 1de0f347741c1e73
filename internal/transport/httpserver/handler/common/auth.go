package common

import (
	"errors"
	"net/http"
	"strings"

	"wedding-registry-go/internal/auth"
)

type guestLoginRequest struct {
	Password string `json:"password"`
}

type adminLoginRequest struct {
	Code string `json:"code"`
}

func (h *Handlers) GuestLogin(w http.ResponseWriter, r *http.Request) {
	var req guestLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		writeError(w, http.StatusBadRequest, "password_required", "Please enter the password from your invitation.")
		return
	}

	if err := h.Credentials.CheckGuestPassword(req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			h.log.BusinessError("auth.guest_login: wrong password", err)
			writeError(w, http.StatusUnauthorized, "invalid_password", "That password isn't right. Check your invitation and try again.")
			return
		}
		h.log.InternalError("auth.guest_login: check password failed", err)
		WriteInternalError(w)
		return
	}

	h.issue(w, auth.RoleGuest)
}

func (h *Handlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "code_required", "admin code required")
		return
	}

	if err := h.Credentials.CheckAdminCode(req.Code); err != nil {
		if errors.Is(err, auth.ErrInvalidCode) {
			h.log.BusinessError("auth.admin_login: wrong code", err)
			writeError(w, http.StatusUnauthorized, "invalid_code", "invalid admin code")
			return
		}
		h.log.InternalError("auth.admin_login: check code failed", err)
		WriteInternalError(w)
		return
	}

	h.issue(w, auth.RoleAdmin)
}

func (h *Handlers) issue(w http.ResponseWriter, role auth.Role) {
	session, err := h.Sessions.Issue(role)
	if err != nil {
		h.log.InternalError("auth.login: issue session failed", err, "role", string(role))
		WriteInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
