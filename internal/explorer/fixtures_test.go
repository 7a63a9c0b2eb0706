package explorer_test

import "github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"

func candidate(name, committee, jurisdiction, office, district string, raised float64) model.Candidate {
	return model.Candidate{
		CandidateName:         name,
		CommitteeName:         committee,
		Jurisdiction:          jurisdiction,
		Office:                office,
		District:              district,
		TotalContributionsSum: raised,
	}
}

// mayorRace is the two-candidate dataset used across tests.
func mayorRace() []model.Candidate {
	return []model.Candidate{
		candidate("A", "C1", "City", "Mayor", "", 100),
		candidate("B", "C2", "City", "Mayor", "", 50),
	}
}

func mixedRaces() []model.Candidate {
	council1 := candidate("Dana Reyes", "Reyes for Council", "City", "Council", "1", 2500)
	council1.ReportsFiled = 2
	council1.TotalExpendituresSum = 1800
	council1.CashOnHand = 700
	council1.OutstandingDebt = -50

	council2 := candidate("eli brooks", "Friends of Eli", "City", "Council", "2", 900)
	council2.ReportsFiled = 1
	council2.TotalExpendituresSum = 400

	mayor := candidate("Alma Ortiz", "Ortiz 2026", "City", "Mayor", "", 12000)
	mayor.ReportsFiled = 3
	mayor.TotalExpendituresSum = 9000
	mayor.CashOnHand = 3000
	mayor.OutstandingDebt = 1200

	council1b := candidate("Chris Nguyen", "Committee to Elect Nguyen", "City", "Council", "1", 4000)
	council1b.ReportsFiled = 1
	council1b.TotalExpendituresSum = 3100

	board := candidate("Bea Lam", "Lam for Schools", "County", "School Board", "", 0)

	return []model.Candidate{council1, council2, mayor, council1b, board}
}

func names(candidates []model.Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.CandidateName
	}
	return out
}
