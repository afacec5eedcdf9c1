package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fitizen/fitizen-go/internal/model"
	"github.com/fitizen/fitizen-go/internal/service"
	"github.com/fitizen/fitizen-go/internal/session"
)

// AuthHandler handles HTTP requests for the passwordless login flow.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleLogin handles POST /api/v1/auth/login requests. A successful
// response only means a link was issued; it never reveals whether the
// email belongs to a registered user.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	if err := h.service.RequestMagicLink(r.Context(), req); err != nil {
		if errors.Is(err, service.ErrEmailRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "magic link sent to email"})
}

// HandleValidateMagicLink handles GET /validate-magic-link requests.
// The browser lands here from the emailed link; outcomes are redirects,
// not JSON. An invalid or expired link sends the browser back to login
// with no session cookie written.
func (h *AuthHandler) HandleValidateMagicLink(w http.ResponseWriter, r *http.Request) {
	magic := r.URL.Query().Get("magic")

	dest, err := h.service.ResolveMagicLink(r.Context(), w, r, magic)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrExpiredLink) {
			http.Redirect(w, r, service.DestLogin, http.StatusFound)
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	http.Redirect(w, r, dest, http.StatusFound)
}

// HandleSetupProfile handles POST /api/v1/auth/setup-profile requests.
// Requires a setup-pending session; creates the user record and
// upgrades the session to established.
func (h *AuthHandler) HandleSetupProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.SetupProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	user, err := h.service.CompleteSetup(r.Context(), w, r, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFirstNameRequired), errors.Is(err, service.ErrLastNameRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, session.ErrUnauthenticated):
			writeJSON(w, http.StatusUnauthorized, errorResponse("unauthenticated"))
		case errors.Is(err, service.ErrSetupSessionRequired):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	})
}

// HandleMe handles GET /api/v1/auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.CurrentUser(r.Context(), r)
	if err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			writeJSON(w, http.StatusUnauthorized, errorResponse("unauthenticated"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleLogout handles POST /api/v1/auth/logout requests. Logging out
// without a session succeeds; there is nothing to tear down.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), w, r); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
