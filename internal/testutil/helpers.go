package testutil

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/repository"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/statetoken"
)

// NewTestCatalogService creates a CatalogService over db and loads whatever
// dataset db holds.
func NewTestCatalogService(t *testing.T, db *sql.DB) *service.CatalogService {
	t.Helper()

	catalog := service.NewCatalogService(repository.NewCandidateRepository(db), zap.NewNop())
	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	return catalog
}

// NewTestStateCodec creates a state token codec with a fresh key.
func NewTestStateCodec(t *testing.T, ttl time.Duration) *statetoken.Codec {
	t.Helper()

	codec, err := statetoken.NewCodec("", ttl)
	if err != nil {
		t.Fatalf("Failed to create state codec: %v", err)
	}
	return codec
}

// NewTestSessionService creates a SessionService over catalog.
func NewTestSessionService(t *testing.T, catalog *service.CatalogService) *service.SessionService {
	t.Helper()

	return service.NewSessionService(catalog, NewTestStateCodec(t, time.Hour), zap.NewNop())
}

// NewTestSystemService creates a SystemService over db and catalog.
func NewTestSystemService(t *testing.T, db *sql.DB, catalog *service.CatalogService) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, catalog, map[string]bool{"share_tokens": true})
}

// MakeID generates a new UUID string for testing.
func MakeID() string {
	return uuid.New().String()
}

// MakeCandidateName generates a unique candidate name for testing.
//
// Example usage:
//
//	name := testutil.MakeCandidateName("Candidate")
//	// Returns: "Candidate ABC123"
func MakeCandidateName(base string) string {
	if base == "" {
		base = "Candidate"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
