package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/api/response"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/testutil"
)

const councilRace = "City of Springfield - City Council District 1"

func setupCandidateHandler(t *testing.T) *CandidateHandler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	candidates := testutil.SampleCandidates()
	candidates[0].Jurisdiction = "https://springfield.example/elections"
	testutil.SeedCandidates(t, db, candidates...)
	return NewCandidateHandler(testutil.NewTestCatalogService(t, db))
}

func TestCandidateHandler_Candidates(t *testing.T) {
	handler := setupCandidateHandler(t)

	t.Run("returns every candidate unfiltered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/candidates", nil)
		w := httptest.NewRecorder()

		handler.Candidates(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp ProjectionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		if len(resp.Candidates) != 4 {
			t.Errorf("Expected 4 candidates, got %d", len(resp.Candidates))
		}
		if resp.Summary.Filtered {
			t.Error("Expected unfiltered summary")
		}
		if resp.LastUpdated.IsZero() {
			t.Error("Expected lastUpdated to be set")
		}
	})

	t.Run("filters and sorts", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/candidates", map[string]string{
			"race": councilRace,
			"sort": "total_contributions_sum",
			"dir":  "desc",
		})
		w := httptest.NewRecorder()

		handler.Candidates(w, req)

		var resp ProjectionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		if len(resp.Candidates) != 2 {
			t.Fatalf("Expected 2 candidates, got %d", len(resp.Candidates))
		}
		if resp.Candidates[0].CandidateName != "Chris Nguyen" {
			t.Errorf("Expected Chris Nguyen first, got %s", resp.Candidates[0].CandidateName)
		}
		if !resp.Summary.Filtered || resp.Summary.TotalRaised != 6500 {
			t.Errorf("Expected filtered summary raising 6500, got %+v", resp.Summary)
		}
	})

	t.Run("no matches sets the empty flag", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/candidates", map[string]string{"q": "zzz"})
		w := httptest.NewRecorder()

		handler.Candidates(w, req)

		var resp ProjectionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		if !resp.Empty || resp.Summary.TotalCandidates != 0 {
			t.Errorf("Expected empty projection, got %+v", resp.Projection)
		}
	})

	t.Run("unknown sort column keeps dataset order", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/candidates", map[string]string{"sort": "committee"})
		w := httptest.NewRecorder()

		handler.Candidates(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp ProjectionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		var got []string
		for _, c := range resp.Candidates {
			got = append(got, c.CandidateName)
		}
		want := []string{"Alma Ortiz", "Dana Reyes", "Chris Nguyen", "Bea Lam"}
		if !slices.Equal(got, want) {
			t.Errorf("Expected dataset order %v, got %v", want, got)
		}
		if resp.Sort.Column != explorer.ColumnNone {
			t.Errorf("Expected no sort column, got %q", resp.Sort.Column)
		}
	})
}

func TestCandidateHandler_RaceGroups(t *testing.T) {
	handler := setupCandidateHandler(t)

	req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/races/groups", map[string]string{
		"race": councilRace, // ignored by the race view
	})
	w := httptest.NewRecorder()

	handler.RaceGroups(w, req)

	var resp ProjectionResponse
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&resp)

	if resp.View != explorer.ViewRace || resp.RaceSelectorVisible {
		t.Errorf("Expected race view without selector, got %s visible=%v", resp.View, resp.RaceSelectorVisible)
	}
	if len(resp.Groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(resp.Groups))
	}
	for _, g := range resp.Groups {
		if g.Label == councilRace && (g.Count != 2 || g.Candidates[0].CandidateName != "Chris Nguyen") {
			t.Errorf("Expected council group ordered by contributions, got %+v", g)
		}
	}
}

func TestCandidateHandler_Summary(t *testing.T) {
	handler := setupCandidateHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	w := httptest.NewRecorder()

	handler.Summary(w, req)

	var resp explorer.Summary
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&resp)

	if resp.TotalCandidates != 4 || resp.WithReports != 3 {
		t.Errorf("Expected 4 candidates / 3 with reports, got %+v", resp)
	}
	if resp.TotalRaised != 18500 || resp.TotalSpent != 13900 {
		t.Errorf("Expected raised 18500 / spent 13900, got %+v", resp)
	}
}

func TestCandidateHandler_Races(t *testing.T) {
	handler := setupCandidateHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/races", nil)
	w := httptest.NewRecorder()

	handler.Races(w, req)

	var resp RacesResponse
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&resp)

	// Byte order: upper case sorts before lower case.
	want := []string{
		councilRace,
		"Shelby County - School Board",
		"https://springfield.example/elections - Mayor",
	}
	if len(resp.Races) != len(want) {
		t.Fatalf("Expected %v, got %v", want, resp.Races)
	}
	for i := range want {
		if resp.Races[i] != want[i] {
			t.Errorf("Race %d: expected %q, got %q", i, want[i], resp.Races[i])
		}
	}
}

func TestCandidateHandler_CandidateDetail(t *testing.T) {
	handler := setupCandidateHandler(t)

	t.Run("returns the candidate with a decorated jurisdiction link", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/candidates/detail", map[string]string{
			"name":         "Alma Ortiz",
			"jurisdiction": "https://springfield.example/elections",
			"office":       "Mayor",
		})
		w := httptest.NewRecorder()

		handler.CandidateDetail(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp CandidateDetailResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.CandidateName != "Alma Ortiz" || len(resp.Reports) != 1 {
			t.Errorf("Unexpected candidate %+v", resp.Candidate)
		}
		want := model.JurisdictionURL("https://springfield.example/elections")
		if resp.JurisdictionURL != want {
			t.Errorf("Expected %q, got %q", want, resp.JurisdictionURL)
		}
	})

	t.Run("404 for an unknown candidate", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/candidates/detail", map[string]string{
			"name":         "Nobody",
			"jurisdiction": "Nowhere",
			"office":       "Mayor",
		})
		w := httptest.NewRecorder()

		handler.CandidateDetail(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("400 lists missing parameters", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/candidates/detail", map[string]string{
			"name": "Alma Ortiz",
		})
		w := httptest.NewRecorder()

		handler.CandidateDetail(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}

		var resp struct {
			response.ErrorResponse
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		if _, ok := resp.Details["jurisdiction"]; !ok {
			t.Errorf("Expected jurisdiction error, got %v", resp.Details)
		}
		if _, ok := resp.Details["office"]; !ok {
			t.Errorf("Expected office error, got %v", resp.Details)
		}
	})
}
