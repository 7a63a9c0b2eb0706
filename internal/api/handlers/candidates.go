package handlers

import (
	"net/http"
	"time"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/api/request"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/api/response"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/validation"
)

// CandidateHandler serves stateless reads of the candidate dataset.
type CandidateHandler struct {
	catalogService *service.CatalogService
}

// NewCandidateHandler creates a new CandidateHandler
func NewCandidateHandler(catalogService *service.CatalogService) *CandidateHandler {
	return &CandidateHandler{
		catalogService: catalogService,
	}
}

// ProjectionResponse is a projection together with the dataset timestamp.
type ProjectionResponse struct {
	explorer.Projection
	LastUpdated time.Time `json:"lastUpdated"`
}

// CandidateDetailResponse is one candidate with its decorated jurisdiction link.
type CandidateDetailResponse struct {
	model.Candidate
	JurisdictionURL string `json:"jurisdictionUrl"`
}

// RacesResponse lists the race selector options.
type RacesResponse struct {
	Races []string `json:"races"`
}

// Candidates handles GET requests for the table view.
//
// Endpoint: GET /api/candidates?race=&q=&sort=&dir=
// Response: 200 OK with ProjectionResponse
// Error: 400 Bad Request for an unknown sort column or direction
func (h *CandidateHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	q, ok := parseProjectionQuery(w, r)
	if !ok {
		return
	}
	h.respondProjection(w, q.State(explorer.ViewTable))
}

// RaceGroups handles GET requests for the race view. Only the text filter
// applies; candidates are grouped by race.
//
// Endpoint: GET /api/races/groups?q=
// Response: 200 OK with ProjectionResponse
func (h *CandidateHandler) RaceGroups(w http.ResponseWriter, r *http.Request) {
	q, ok := parseProjectionQuery(w, r)
	if !ok {
		return
	}
	h.respondProjection(w, q.State(explorer.ViewRace))
}

// Summary handles GET requests for the summary metrics of a filter.
//
// Endpoint: GET /api/summary?race=&q=
// Response: 200 OK with explorer.Summary
func (h *CandidateHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q, ok := parseProjectionQuery(w, r)
	if !ok {
		return
	}
	p := h.catalogService.Project(q.State(explorer.ViewTable))
	respondJSON(w, http.StatusOK, p.Summary)
}

// Races handles GET requests for the sorted list of race labels.
//
// Endpoint: GET /api/races
// Response: 200 OK with RacesResponse
func (h *CandidateHandler) Races(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, RacesResponse{Races: h.catalogService.Races()})
}

// CandidateDetail handles GET requests for one candidate by identity tuple.
//
// Endpoint: GET /api/candidates/detail?name=&jurisdiction=&office=&district=
// Response: 200 OK with CandidateDetailResponse
// Error: 400 Bad Request when a required parameter is missing
// Error: 404 Not Found when no candidate matches
func (h *CandidateHandler) CandidateDetail(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.DetailsRequest{
		CandidateName: query.Get("name"),
		Jurisdiction:  query.Get("jurisdiction"),
		Office:        query.Get("office"),
		District:      query.Get("district"),
	}
	if err := validation.ValidateDetails(req); err != nil {
		respondValidationError(w, err)
		return
	}

	c, err := h.catalogService.GetCandidate(detailsID(req))
	if err != nil {
		respondServiceError(w, "failed to get candidate", err)
		return
	}

	respondJSON(w, http.StatusOK, CandidateDetailResponse{
		Candidate:       c,
		JurisdictionURL: model.JurisdictionURL(c.Jurisdiction),
	})
}

func (h *CandidateHandler) respondProjection(w http.ResponseWriter, st explorer.State) {
	snap := h.catalogService.Snapshot()
	respondJSON(w, http.StatusOK, ProjectionResponse{
		Projection:  explorer.Project(st, snap.Candidates),
		LastUpdated: snap.LoadedAt,
	})
}

func parseProjectionQuery(w http.ResponseWriter, r *http.Request) (*request.ProjectionQuery, bool) {
	query := r.URL.Query()
	q, err := request.ParseProjectionQuery(
		query.Get("race"),
		query.Get("q"),
		query.Get("sort"),
		query.Get("dir"),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return nil, false
	}
	return q, true
}

func detailsID(req request.DetailsRequest) model.CandidateID {
	return model.CandidateID{
		CandidateName: req.CandidateName,
		Jurisdiction:  req.Jurisdiction,
		Office:        req.Office,
		District:      req.District,
	}
}
