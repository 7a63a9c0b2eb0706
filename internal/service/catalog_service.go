package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/apperrors"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/ingest"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/repository"
)

// Snapshot is an immutable view of the dataset. A reload publishes a new
// Snapshot; existing ones are never modified.
type Snapshot struct {
	Candidates []model.Candidate
	Races      []string
	Source     string
	LoadedAt   time.Time
}

// CatalogService owns the in-memory candidate dataset. Reads go through the
// current Snapshot without locking; imports write to the database and then
// publish a fresh Snapshot.
type CatalogService struct {
	candidateRepo *repository.CandidateRepository
	logger        *zap.Logger

	snapshot atomic.Pointer[Snapshot]
	imports  singleflight.Group
}

// NewCatalogService creates a CatalogService with an empty snapshot. Call Load
// to read the stored dataset.
func NewCatalogService(candidateRepo *repository.CandidateRepository, logger *zap.Logger) *CatalogService {
	s := &CatalogService{
		candidateRepo: candidateRepo,
		logger:        logger,
	}
	s.snapshot.Store(&Snapshot{Candidates: []model.Candidate{}, Races: []string{}})
	return s
}

// Load reads the stored dataset and publishes it.
func (s *CatalogService) Load(ctx context.Context) error {
	candidates, err := s.candidateRepo.GetCandidates(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveCandidates, err)
	}

	snap := &Snapshot{
		Candidates: candidates,
		Races:      model.RaceLabels(candidates),
		LoadedAt:   time.Now().UTC(),
	}

	imp, err := s.candidateRepo.LatestImport(ctx)
	switch {
	case err == nil:
		snap.Source = imp.Source
		snap.LoadedAt = imp.ImportedAt
	case !errors.Is(err, apperrors.ErrDatasetNotLoaded):
		return err
	}

	s.snapshot.Store(snap)
	s.logger.Info("dataset loaded",
		zap.Int("candidates", len(snap.Candidates)),
		zap.Int("races", len(snap.Races)),
		zap.String("source", snap.Source),
	)
	return nil
}

// Import stores candidates as the new dataset and publishes it.
func (s *CatalogService) Import(ctx context.Context, candidates []model.Candidate, source string) (model.DatasetImport, error) {
	imp, err := s.candidateRepo.ReplaceAll(ctx, candidates, source)
	if err != nil {
		return model.DatasetImport{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportCandidates, err)
	}

	if err := s.Load(ctx); err != nil {
		return model.DatasetImport{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToReloadDataset, err)
	}

	return imp, nil
}

// ImportFile parses the CSV export at path and imports it. Concurrent calls
// for the same path share one import.
func (s *CatalogService) ImportFile(ctx context.Context, path string) (model.DatasetImport, error) {
	if path == "" {
		return model.DatasetImport{}, apperrors.ErrNoDataSource
	}

	v, err, shared := s.imports.Do(path, func() (interface{}, error) {
		candidates, err := ingest.ParseFile(path)
		if err != nil {
			return model.DatasetImport{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportCandidates, err)
		}
		return s.Import(ctx, candidates, path)
	})
	if err != nil {
		return model.DatasetImport{}, err
	}
	if shared {
		s.logger.Debug("import request joined an import in flight", zap.String("path", path))
	}

	return v.(model.DatasetImport), nil
}

// Snapshot returns the current dataset snapshot. It is never nil.
func (s *CatalogService) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Candidates returns the current candidates. Callers must not modify the slice.
func (s *CatalogService) Candidates() []model.Candidate {
	return s.Snapshot().Candidates
}

// Races returns the sorted race labels of the current dataset.
func (s *CatalogService) Races() []string {
	return s.Snapshot().Races
}

// GetCandidate resolves an identity tuple.
// Returns apperrors.ErrCandidateNotFound when no candidate carries it.
func (s *CatalogService) GetCandidate(id model.CandidateID) (model.Candidate, error) {
	c, ok := model.FindCandidate(s.Candidates(), id)
	if !ok {
		return model.Candidate{}, apperrors.ErrCandidateNotFound
	}
	return c, nil
}

// Project renders state against the current dataset.
func (s *CatalogService) Project(state explorer.State) explorer.Projection {
	return explorer.Project(state, s.Candidates())
}
