package explorer

import "github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"

// Summary holds the headline metrics over the currently filtered candidates.
type Summary struct {
	TotalCandidates int     `json:"totalCandidates"`
	WithReports     int     `json:"withReports"`
	TotalRaised     float64 `json:"totalRaised"`
	TotalSpent      float64 `json:"totalSpent"`
	Filtered        bool    `json:"filtered"`
}

// Summarize computes the summary metrics of candidates. Filtered is left for
// the caller to set.
func Summarize(candidates []model.Candidate) Summary {
	s := Summary{TotalCandidates: len(candidates)}
	for _, c := range candidates {
		if c.HasReports() {
			s.WithReports++
		}
		s.TotalRaised += c.TotalContributionsSum
		s.TotalSpent += c.TotalExpendituresSum
	}
	return s
}
