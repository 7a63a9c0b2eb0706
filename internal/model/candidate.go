package model

// Candidate is one candidate's aggregated campaign-finance record.
// Records are loaded once per dataset snapshot and never mutated afterwards.
type Candidate struct {
	CandidateName              string   `json:"candidateName"`
	CommitteeName              string   `json:"committeeName"`
	Jurisdiction               string   `json:"jurisdiction"`
	Office                     string   `json:"office"`
	District                   string   `json:"district"`
	TotalMonetaryContributions float64  `json:"totalMonetaryContributions"`
	TotalLoansReceived         float64  `json:"totalLoansReceived"`
	TotalContributionsSum      float64  `json:"totalContributionsSum"`
	TotalExpendituresSum       float64  `json:"totalExpendituresSum"`
	CashOnHand                 float64  `json:"cashOnHand"`
	OutstandingDebt            float64  `json:"outstandingDebt"` // signed, negative values are meaningful
	ReportsFiled               int      `json:"reportsFiled"`
	LatestDateFiled            string   `json:"latestDateFiled"`
	Link                       string   `json:"link"`
	Reports                    []Report `json:"reports"` // filing order, not necessarily chronological
}

// Report is a single periodic disclosure filed by a candidate's committee.
type Report struct {
	Period                string  `json:"period"`
	DateFiled             string  `json:"dateFiled"`
	MonetaryContributions float64 `json:"monetaryContributions"`
	LoansReceived         float64 `json:"loansReceived"`
	TotalContributions    float64 `json:"totalContributions"`
	TotalExpenditures     float64 `json:"totalExpenditures"`
	CashOnHand            float64 `json:"cashOnHand"`
	OutstandingDebt       float64 `json:"outstandingDebt"`
	Link                  string  `json:"link"`
}

// CandidateID is the identity tuple of a candidate. No two candidates in a
// dataset share one.
type CandidateID struct {
	CandidateName string `json:"candidateName"`
	Jurisdiction  string `json:"jurisdiction"`
	Office        string `json:"office"`
	District      string `json:"district"`
}

// ID returns the identity tuple of c.
func (c Candidate) ID() CandidateID {
	return CandidateID{
		CandidateName: c.CandidateName,
		Jurisdiction:  c.Jurisdiction,
		Office:        c.Office,
		District:      c.District,
	}
}

// Race returns the race c is running in.
func (c Candidate) Race() RaceKey {
	return RaceKey{
		Jurisdiction: c.Jurisdiction,
		Office:       c.Office,
		District:     c.District,
	}
}

// HasReports reports whether at least one filing was counted for c.
func (c Candidate) HasReports() bool {
	return c.ReportsFiled > 0
}

// FindCandidate returns the candidate matching id, or false when no record
// carries that identity.
func FindCandidate(candidates []Candidate, id CandidateID) (Candidate, bool) {
	for _, c := range candidates {
		if c.ID() == id {
			return c, true
		}
	}
	return Candidate{}, false
}
