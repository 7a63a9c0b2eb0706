package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/api/request"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/validation"
)

// SessionHandler handles explorer session HTTP requests. Every mutating
// endpoint returns the session's projection after the transition.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// TokenResponse carries a share token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Create starts a session in the initial state.
//
// Endpoint: POST /api/session
// Response: 201 Created with service.SessionView
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusCreated, h.sessionService.Create())
}

// Restore starts a session from a share token.
//
// Endpoint: POST /api/session/restore
// Response: 201 Created with service.SessionView
// Error: 400 Bad Request for a missing, forged or expired token
func (h *SessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req request.RestoreSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateRestoreSession(req); err != nil {
		respondValidationError(w, err)
		return
	}

	view, err := h.sessionService.Restore(req.Token)
	if err != nil {
		respondServiceError(w, "failed to restore session", err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// Get returns the session's current projection.
//
// Endpoint: GET /api/session/{uuid}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "failed to get session")(h.sessionService.Get(sessionID(r)))
}

// SetRace changes the race selector.
//
// Endpoint: PUT /api/session/{uuid}/race
func (h *SessionHandler) SetRace(w http.ResponseWriter, r *http.Request) {
	var req request.SetRaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, "failed to set race")(h.sessionService.SetRace(sessionID(r), req.Race))
}

// SetQuery changes the free-text search.
//
// Endpoint: PUT /api/session/{uuid}/query
func (h *SessionHandler) SetQuery(w http.ResponseWriter, r *http.Request) {
	var req request.SetQueryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, "failed to set query")(h.sessionService.SetQuery(sessionID(r), req.Query))
}

// SetSort picks a sort column; picking the active ascending column again
// sorts descending. A column that cannot be sorted leaves the state as it was.
//
// Endpoint: POST /api/session/{uuid}/sort
func (h *SessionHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req request.SetSortRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateSetSort(req); err != nil {
		respondValidationError(w, err)
		return
	}
	h.respond(w, "failed to set sort")(h.sessionService.SetSort(sessionID(r), explorer.SortColumn(req.Column)))
}

// SetView switches between the table and race views.
//
// Endpoint: PUT /api/session/{uuid}/view
func (h *SessionHandler) SetView(w http.ResponseWriter, r *http.Request) {
	var req request.SetViewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateSetView(req); err != nil {
		respondValidationError(w, err)
		return
	}
	h.respond(w, "failed to switch view")(h.sessionService.SwitchView(sessionID(r), explorer.View(req.View)))
}

// Clear resets race, query and sort.
//
// Endpoint: POST /api/session/{uuid}/clear
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "failed to clear filters")(h.sessionService.ClearFilters(sessionID(r)))
}

// OpenDetails opens the detail modal. An unknown candidate is not an error;
// the modal simply stays as it was.
//
// Endpoint: POST /api/session/{uuid}/details
func (h *SessionHandler) OpenDetails(w http.ResponseWriter, r *http.Request) {
	var req request.DetailsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateDetails(req); err != nil {
		respondValidationError(w, err)
		return
	}
	h.respond(w, "failed to open details")(h.sessionService.OpenDetails(sessionID(r), detailsID(req)))
}

// CloseDetails closes the detail modal.
//
// Endpoint: DELETE /api/session/{uuid}/details
func (h *SessionHandler) CloseDetails(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "failed to close details")(h.sessionService.CloseDetails(sessionID(r)))
}

// Token issues a share token for the session.
//
// Endpoint: GET /api/session/{uuid}/token
func (h *SessionHandler) Token(w http.ResponseWriter, r *http.Request) {
	token, err := h.sessionService.Token(sessionID(r))
	if err != nil {
		respondServiceError(w, "failed to issue token", err)
		return
	}
	respondJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// End discards the session.
//
// Endpoint: DELETE /api/session/{uuid}
// Response: 204 No Content
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.End(sessionID(r)); err != nil {
		respondServiceError(w, "failed to end session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respond writes the outcome of a session operation.
func (h *SessionHandler) respond(w http.ResponseWriter, message string) func(service.SessionView, error) {
	return func(view service.SessionView, err error) {
		if err != nil {
			respondServiceError(w, message, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "uuid")
}
