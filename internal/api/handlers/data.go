package handlers

import (
	"net/http"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
)

// DataHandler handles dataset maintenance requests.
type DataHandler struct {
	catalogService *service.CatalogService
	csvPath        string
}

// NewDataHandler creates a new DataHandler that reloads from csvPath.
func NewDataHandler(catalogService *service.CatalogService, csvPath string) *DataHandler {
	return &DataHandler{
		catalogService: catalogService,
		csvPath:        csvPath,
	}
}

// Reload re-imports the configured CSV file and publishes it. Concurrent
// reloads share one import.
//
// Endpoint: POST /api/data/reload
// Response: 200 OK with model.DatasetImport
// Error: 400 Bad Request when the file is malformed
// Error: 409 Conflict when no CSV path is configured
func (h *DataHandler) Reload(w http.ResponseWriter, r *http.Request) {
	imp, err := h.catalogService.ImportFile(r.Context(), h.csvPath)
	if err != nil {
		respondServiceError(w, "failed to reload dataset", err)
		return
	}
	respondJSON(w, http.StatusOK, imp)
}
