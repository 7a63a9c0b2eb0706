package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/testutil"
)

func TestSystemHandler_Health(t *testing.T) {
	setupHandler := func(t *testing.T, seed bool) (*SystemHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		if seed {
			testutil.SeedCandidates(t, db, testutil.SampleCandidates()...)
		}
		ss := testutil.NewTestSystemService(t, db, testutil.NewTestCatalogService(t, db))
		return NewSystemHandler(ss), db
	}

	t.Run("returns healthy status when database is connected and data loaded", func(t *testing.T) {
		handler, _ := setupHandler(t, true)

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != "healthy" {
			t.Errorf("Expected status 'healthy', got '%s'", response.Status)
		}
		if response.Database != "connected" || response.Dataset != "loaded" {
			t.Errorf("Expected connected/loaded, got %s/%s", response.Database, response.Dataset)
		}
		if response.Error != "" {
			t.Errorf("Expected no error, got '%s'", response.Error)
		}
	})

	t.Run("returns 503 before the first import", func(t *testing.T) {
		handler, _ := setupHandler(t, false)

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Database != "connected" || response.Dataset != "not loaded" {
			t.Errorf("Expected connected/not loaded, got %s/%s", response.Database, response.Dataset)
		}
	})

	t.Run("returns 503 when database is disconnected", func(t *testing.T) {
		handler, db := setupHandler(t, true)

		// Close the database connection to simulate failure
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Database != "disconnected" {
			t.Errorf("Expected database 'disconnected', got '%s'", response.Database)
		}
	})
}

func TestSystemHandler_Version(t *testing.T) {
	t.Run("returns version and dataset information", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.SeedCandidates(t, db, testutil.SampleCandidates()...)
		handler := NewSystemHandler(testutil.NewTestSystemService(t, db, testutil.NewTestCatalogService(t, db)))

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		w := httptest.NewRecorder()

		handler.Version(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response VersionInfoResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.AppVersion == "" {
			t.Error("Expected app_version to be populated")
		}
		if response.DbVersion != "2" {
			t.Errorf("Expected db_version 2, got %q", response.DbVersion)
		}
		if response.Features == nil {
			t.Error("Expected features map to be initialized")
		}
		if response.DatasetLoadedAt == nil || response.CandidateCount != 4 || response.RaceCount != 3 {
			t.Errorf("Expected loaded dataset with 4 candidates / 3 races, got %+v", response)
		}
	})

	t.Run("dataset_loaded_at is null before the first import", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(testutil.NewTestSystemService(t, db, testutil.NewTestCatalogService(t, db)))

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		w := httptest.NewRecorder()

		handler.Version(w, req)

		var raw map[string]interface{}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&raw)

		if v, ok := raw["dataset_loaded_at"]; !ok || v != nil {
			t.Errorf("Expected dataset_loaded_at null, got %v", v)
		}
	})

	t.Run("returns 500 when database is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(testutil.NewTestSystemService(t, db, testutil.NewTestCatalogService(t, db)))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		w := httptest.NewRecorder()

		handler.Version(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}
