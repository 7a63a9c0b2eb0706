package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/apperrors"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
)

// CandidateRepository provides data access methods for the candidate, report
// and dataset_import tables.
type CandidateRepository struct {
	db *sql.DB
}

// NewCandidateRepository creates a new CandidateRepository with the provided database connection.
func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// GetCandidates retrieves every candidate with its reports, in import order.
// Reports keep their filing order. Returns an empty slice if nothing has been imported.
func (r *CandidateRepository) GetCandidates(ctx context.Context) ([]model.Candidate, error) {
	query := `
		SELECT id, candidate_name, committee_name, jurisdiction, office, district,
		       total_monetary_contributions, total_loans_received,
		       total_contributions_sum, total_expenditures_sum,
		       cash_on_hand, outstanding_debt, reports_filed, latest_date_filed, link
		FROM candidate
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate table: %w", err)
	}
	defer rows.Close()

	candidates := []model.Candidate{}
	index := make(map[int64]int)

	for rows.Next() {
		var id int64
		c := model.Candidate{Reports: []model.Report{}}

		err := rows.Scan(
			&id,
			&c.CandidateName,
			&c.CommitteeName,
			&c.Jurisdiction,
			&c.Office,
			&c.District,
			&c.TotalMonetaryContributions,
			&c.TotalLoansReceived,
			&c.TotalContributionsSum,
			&c.TotalExpendituresSum,
			&c.CashOnHand,
			&c.OutstandingDebt,
			&c.ReportsFiled,
			&c.LatestDateFiled,
			&c.Link,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate table results: %w", err)
		}

		index[id] = len(candidates)
		candidates = append(candidates, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate table: %w", err)
	}

	if err := r.attachReports(ctx, candidates, index); err != nil {
		return nil, err
	}

	return candidates, nil
}

func (r *CandidateRepository) attachReports(ctx context.Context, candidates []model.Candidate, index map[int64]int) error {
	if len(candidates) == 0 {
		return nil
	}

	query := `
		SELECT candidate_id, period, date_filed, monetary_contributions, loans_received,
		       total_contributions, total_expenditures, cash_on_hand, outstanding_debt, link
		FROM report
		ORDER BY candidate_id, seq
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query report table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var candidateID int64
		var rep model.Report

		err := rows.Scan(
			&candidateID,
			&rep.Period,
			&rep.DateFiled,
			&rep.MonetaryContributions,
			&rep.LoansReceived,
			&rep.TotalContributions,
			&rep.TotalExpenditures,
			&rep.CashOnHand,
			&rep.OutstandingDebt,
			&rep.Link,
		)
		if err != nil {
			return fmt.Errorf("failed to scan report table results: %w", err)
		}

		i, ok := index[candidateID]
		if !ok {
			return fmt.Errorf("%w: report references unknown candidate %d", apperrors.ErrDataInconsistency, candidateID)
		}
		candidates[i].Reports = append(candidates[i].Reports, rep)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating report table: %w", err)
	}

	return nil
}

// ReplaceAll swaps the stored dataset for candidates in one transaction and
// records the import. A candidate identity appearing twice fails the whole
// import with apperrors.ErrDuplicateEntry.
func (r *CandidateRepository) ReplaceAll(ctx context.Context, candidates []model.Candidate, source string) (model.DatasetImport, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.DatasetImport{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM candidate`); err != nil {
		return model.DatasetImport{}, fmt.Errorf("failed to clear candidate table: %w", err)
	}

	candidateStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO candidate (
			candidate_name, committee_name, jurisdiction, office, district,
			total_monetary_contributions, total_loans_received,
			total_contributions_sum, total_expenditures_sum,
			cash_on_hand, outstanding_debt, reports_filed, latest_date_filed, link
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return model.DatasetImport{}, fmt.Errorf("failed to prepare candidate insert: %w", err)
	}
	defer candidateStmt.Close()

	reportStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO report (
			candidate_id, seq, period, date_filed, monetary_contributions, loans_received,
			total_contributions, total_expenditures, cash_on_hand, outstanding_debt, link
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return model.DatasetImport{}, fmt.Errorf("failed to prepare report insert: %w", err)
	}
	defer reportStmt.Close()

	reportCount := 0
	for _, c := range candidates {
		res, err := candidateStmt.ExecContext(ctx,
			c.CandidateName, c.CommitteeName, c.Jurisdiction, c.Office, c.District,
			c.TotalMonetaryContributions, c.TotalLoansReceived,
			c.TotalContributionsSum, c.TotalExpendituresSum,
			c.CashOnHand, c.OutstandingDebt, c.ReportsFiled, c.LatestDateFiled, c.Link,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return model.DatasetImport{}, fmt.Errorf("%w: candidate %s (%s)", apperrors.ErrDuplicateEntry, c.CandidateName, c.Race().Label())
			}
			return model.DatasetImport{}, fmt.Errorf("failed to insert candidate: %w", err)
		}

		candidateID, err := res.LastInsertId()
		if err != nil {
			return model.DatasetImport{}, fmt.Errorf("failed to read candidate id: %w", err)
		}

		for seq, rep := range c.Reports {
			_, err := reportStmt.ExecContext(ctx,
				candidateID, seq, rep.Period, rep.DateFiled, rep.MonetaryContributions, rep.LoansReceived,
				rep.TotalContributions, rep.TotalExpenditures, rep.CashOnHand, rep.OutstandingDebt, rep.Link,
			)
			if err != nil {
				return model.DatasetImport{}, fmt.Errorf("failed to insert report: %w", err)
			}
			reportCount++
		}
	}

	imp := model.DatasetImport{
		ID:             uuid.New().String(),
		Source:         source,
		CandidateCount: len(candidates),
		ReportCount:    reportCount,
		ImportedAt:     time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dataset_import (id, source, candidate_count, report_count, imported_at)
		VALUES (?, ?, ?, ?, ?)
	`, imp.ID, imp.Source, imp.CandidateCount, imp.ReportCount, imp.ImportedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.DatasetImport{}, fmt.Errorf("failed to record dataset import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.DatasetImport{}, fmt.Errorf("failed to commit import: %w", err)
	}

	return imp, nil
}

// LatestImport returns the most recent dataset import.
// Returns apperrors.ErrDatasetNotLoaded when nothing has been imported yet.
func (r *CandidateRepository) LatestImport(ctx context.Context) (model.DatasetImport, error) {
	query := `
		SELECT id, source, candidate_count, report_count, imported_at
		FROM dataset_import
		ORDER BY imported_at DESC, rowid DESC
		LIMIT 1
	`

	var imp model.DatasetImport
	var importedAt string

	err := r.db.QueryRowContext(ctx, query).Scan(
		&imp.ID,
		&imp.Source,
		&imp.CandidateCount,
		&imp.ReportCount,
		&importedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DatasetImport{}, apperrors.ErrDatasetNotLoaded
	}
	if err != nil {
		return model.DatasetImport{}, fmt.Errorf("failed to query dataset_import: %w", err)
	}

	imp.ImportedAt, err = parseTimestamp(importedAt)
	if err != nil {
		return model.DatasetImport{}, err
	}

	return imp, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
