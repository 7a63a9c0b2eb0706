package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/apperrors"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Dataset  string `json:"dataset"`
	Error    string `json:"error,omitempty"`
}

// Health checks database connectivity and whether a dataset has been loaded.
//
// Endpoint: GET /api/system/health
// Response: 200 OK when healthy, 503 Service Unavailable otherwise
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Dataset:  "unknown",
			Error:    err.Error(),
		}
		if errors.Is(err, apperrors.ErrDatasetNotLoaded) {
			response.Database = "connected"
			response.Dataset = "not loaded"
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	// System is healthy
	response := HealthResponse{
		Status:   "healthy",
		Database: "connected",
		Dataset:  "loaded",
	}
	respondJSON(w, http.StatusOK, response)
}

// VersionInfoResponse represents the version check response containing application
// and database version information, feature availability, and the loaded dataset.
type VersionInfoResponse struct {
	AppVersion      string          `json:"app_version"`
	DbVersion       string          `json:"db_version"`
	Features        map[string]bool `json:"features"`
	DatasetSource   string          `json:"dataset_source"`
	DatasetLoadedAt *time.Time      `json:"dataset_loaded_at"`
	CandidateCount  int             `json:"candidate_count"`
	RaceCount       int             `json:"race_count"`
}

// Version handles GET requests to retrieve version information and feature availability.
// Returns the application version, database schema version, available features, and
// when the current dataset was loaded.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfoResponse
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	version, err := h.systemService.CheckVersion()
	if err != nil {
		respondServiceError(w, "failed to get version information", err)
		return
	}

	response := VersionInfoResponse{
		AppVersion:     version.AppVersion,
		DbVersion:      version.DbVersion,
		Features:       version.Features,
		DatasetSource:  version.DatasetSource,
		CandidateCount: version.CandidateCount,
		RaceCount:      version.RaceCount,
	}
	if version.DatasetSource != "" {
		response.DatasetLoadedAt = &version.DatasetLoadedAt
	}

	respondJSON(w, http.StatusOK, response)
}
