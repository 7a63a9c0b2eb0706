package service

import (
	"database/sql"
	"fmt"
	"maps"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/apperrors"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/database"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	catalog  *CatalogService
	features map[string]bool
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, catalog *CatalogService, features map[string]bool) *SystemService {
	return &SystemService{
		db:       db,
		catalog:  catalog,
		features: features,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	if err := database.HealthCheck(s.db); err != nil {
		return err
	}
	if s.catalog.Snapshot().Source == "" {
		return apperrors.ErrDatasetNotLoaded
	}
	return nil
}

// CheckVersion reports the application and schema versions along with the
// state of the loaded dataset.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetVersionInfo, err)
	}

	snap := s.catalog.Snapshot()
	return model.VersionInfo{
		AppVersion:      version.Version,
		DbVersion:       fmt.Sprintf("%d", dbVersion),
		Features:        maps.Clone(s.features),
		DatasetSource:   snap.Source,
		DatasetLoadedAt: snap.LoadedAt,
		CandidateCount:  len(snap.Candidates),
		RaceCount:       len(snap.Races),
	}, nil
}
