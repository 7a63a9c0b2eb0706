package explorer

import (
	"cmp"
	"slices"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
)

// RaceGroup is one race in the grouped view, with the metrics shown on its
// card header.
type RaceGroup struct {
	Key         model.RaceKey     `json:"key"`
	Label       string            `json:"label"`
	Candidates  []model.Candidate `json:"candidates"`
	Count       int               `json:"count"`
	WithReports int               `json:"withReports"`
	TotalRaised float64           `json:"totalRaised"`
}

// GroupByRace partitions candidates by race. Groups are ordered by label and
// candidates within a group by total contributions, highest first; ties keep
// input order.
func GroupByRace(candidates []model.Candidate) []RaceGroup {
	index := make(map[string]int)
	var groups []RaceGroup

	for _, c := range candidates {
		label := c.Race().Label()
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, RaceGroup{Key: c.Race(), Label: label})
		}
		groups[i].Candidates = append(groups[i].Candidates, c)
	}

	for i := range groups {
		g := &groups[i]
		slices.SortStableFunc(g.Candidates, func(a, b model.Candidate) int {
			return cmp.Compare(b.TotalContributionsSum, a.TotalContributionsSum)
		})
		g.Count = len(g.Candidates)
		for _, c := range g.Candidates {
			if c.HasReports() {
				g.WithReports++
			}
			g.TotalRaised += c.TotalContributionsSum
		}
	}

	slices.SortFunc(groups, func(a, b RaceGroup) int {
		return cmp.Compare(a.Label, b.Label)
	})
	return groups
}
