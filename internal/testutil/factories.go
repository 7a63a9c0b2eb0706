package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/repository"
)

// CandidateBuilder provides a fluent interface for creating test candidates.
//
// Example usage:
//
//	// Simple creation with defaults
//	c := testutil.NewCandidate().Build()
//
//	// Customized candidate
//	c := testutil.NewCandidate().
//	    WithName("Dana Reyes").
//	    InRace("City of Springfield", "City Council", "1").
//	    WithReport("2024-03-01", 2500, 1800).
//	    Build()
type CandidateBuilder struct {
	c model.Candidate
}

// NewCandidate creates a CandidateBuilder with sensible defaults: a unique
// name in a mayoral race with no reports.
func NewCandidate() *CandidateBuilder {
	name := MakeCandidateName("Candidate")
	return &CandidateBuilder{c: model.Candidate{
		CandidateName: name,
		CommitteeName: "Friends of " + name,
		Jurisdiction:  "City of Springfield",
		Office:        "Mayor",
		Reports:       []model.Report{},
	}}
}

// WithName sets the candidate name.
func (b *CandidateBuilder) WithName(name string) *CandidateBuilder {
	b.c.CandidateName = name
	return b
}

// WithCommittee sets the committee name.
func (b *CandidateBuilder) WithCommittee(committee string) *CandidateBuilder {
	b.c.CommitteeName = committee
	return b
}

// InRace sets jurisdiction, office and district.
func (b *CandidateBuilder) InRace(jurisdiction, office, district string) *CandidateBuilder {
	b.c.Jurisdiction = jurisdiction
	b.c.Office = office
	b.c.District = district
	return b
}

// WithCashOnHand sets cash on hand and outstanding debt.
func (b *CandidateBuilder) WithCashOnHand(cash, debt float64) *CandidateBuilder {
	b.c.CashOnHand = cash
	b.c.OutstandingDebt = debt
	return b
}

// WithReport appends a filed report and folds it into the totals the way an
// import does.
func (b *CandidateBuilder) WithReport(dateFiled string, contributions, expenditures float64) *CandidateBuilder {
	b.c.Reports = append(b.c.Reports, model.Report{
		Period:                "2024-01-01 - 2024-03-31",
		DateFiled:             dateFiled,
		MonetaryContributions: contributions,
		TotalContributions:    contributions,
		TotalExpenditures:     expenditures,
		CashOnHand:            contributions - expenditures,
	})
	b.c.TotalMonetaryContributions += contributions
	b.c.TotalContributionsSum += contributions
	b.c.TotalExpendituresSum += expenditures
	b.c.ReportsFiled++
	b.c.CashOnHand = b.c.TotalContributionsSum - b.c.TotalExpendituresSum
	b.c.LatestDateFiled = dateFiled
	return b
}

// Build returns the candidate.
func (b *CandidateBuilder) Build() model.Candidate {
	return b.c
}

// SeedCandidates stores candidates as the current dataset, replacing any
// previous one.
//
// Example usage:
//
//	testutil.SeedCandidates(t, db,
//	    testutil.NewCandidate().WithName("A").Build(),
//	    testutil.NewCandidate().WithName("B").Build(),
//	)
func SeedCandidates(t *testing.T, db *sql.DB, candidates ...model.Candidate) model.DatasetImport {
	t.Helper()

	imp, err := repository.NewCandidateRepository(db).ReplaceAll(context.Background(), candidates, "test-seed.csv")
	if err != nil {
		t.Fatalf("Failed to seed candidates: %v", err)
	}
	return imp
}

// SampleCandidates returns a small dataset spanning three races.
func SampleCandidates() []model.Candidate {
	return []model.Candidate{
		NewCandidate().WithName("Alma Ortiz").WithCommittee("Ortiz for Mayor").
			InRace("City of Springfield", "Mayor", "").
			WithReport("2024-04-15", 12000, 9000).
			Build(),
		NewCandidate().WithName("Dana Reyes").WithCommittee("Reyes for Council").
			InRace("City of Springfield", "City Council", "1").
			WithReport("2024-04-10", 2500, 1800).
			Build(),
		NewCandidate().WithName("Chris Nguyen").WithCommittee("Nguyen Campaign").
			InRace("City of Springfield", "City Council", "1").
			WithReport("2024-04-12", 4000, 3100).
			Build(),
		NewCandidate().WithName("Bea Lam").WithCommittee("Lam for Schools").
			InRace("Shelby County", "School Board", "").
			Build(),
	}
}
