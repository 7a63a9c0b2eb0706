package explorer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
)

func TestGroupByRace(t *testing.T) {
	t.Run("single race ordered by contributions", func(t *testing.T) {
		groups := explorer.GroupByRace(mayorRace())
		require.Len(t, groups, 1)
		assert.Equal(t, "City - Mayor", groups[0].Label)
		assert.Equal(t, model.RaceKey{Jurisdiction: "City", Office: "Mayor"}, groups[0].Key)
		assert.Equal(t, []string{"A", "B"}, names(groups[0].Candidates))
		assert.Equal(t, 150.0, groups[0].TotalRaised)
	})

	t.Run("groups ordered by label with per-group metrics", func(t *testing.T) {
		groups := explorer.GroupByRace(mixedRaces())

		labels := make([]string, len(groups))
		for i, g := range groups {
			labels[i] = g.Label
		}
		want := []string{
			"City - Council District 1",
			"City - Council District 2",
			"City - Mayor",
			"County - School Board",
		}
		if diff := cmp.Diff(want, labels); diff != "" {
			t.Fatalf("group order mismatch (-want +got):\n%s", diff)
		}

		district1 := groups[0]
		assert.Equal(t, []string{"Chris Nguyen", "Dana Reyes"}, names(district1.Candidates))
		assert.Equal(t, 2, district1.Count)
		assert.Equal(t, 2, district1.WithReports)
		assert.Equal(t, 6500.0, district1.TotalRaised)

		board := groups[3]
		assert.Equal(t, 1, board.Count)
		assert.Equal(t, 0, board.WithReports)
	})

	t.Run("is a partition of the input", func(t *testing.T) {
		all := mixedRaces()
		groups := explorer.GroupByRace(all)

		seen := map[model.CandidateID]int{}
		for _, g := range groups {
			for i, c := range g.Candidates {
				seen[c.ID()]++
				assert.Equal(t, g.Label, c.Race().Label())
				if i > 0 {
					assert.GreaterOrEqual(t, g.Candidates[i-1].TotalContributionsSum, c.TotalContributionsSum)
				}
			}
		}
		assert.Len(t, seen, len(all))
		for _, c := range all {
			assert.Equal(t, 1, seen[c.ID()])
		}
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		assert.Empty(t, explorer.GroupByRace(nil))
	})

	t.Run("label order is case-sensitive byte order", func(t *testing.T) {
		groups := explorer.GroupByRace([]model.Candidate{
			candidate("x", "", "city", "Mayor", "", 0),
			candidate("y", "", "City", "Mayor", "", 0),
		})
		require.Len(t, groups, 2)
		assert.Equal(t, "City - Mayor", groups[0].Label)
		assert.Equal(t, "city - Mayor", groups[1].Label)
	})
}

func TestSummarize(t *testing.T) {
	s := explorer.Summarize(mixedRaces())
	assert.Equal(t, 5, s.TotalCandidates)
	assert.Equal(t, 4, s.WithReports)
	assert.Equal(t, 19400.0, s.TotalRaised)
	assert.Equal(t, 14300.0, s.TotalSpent)
	assert.False(t, s.Filtered)
}
