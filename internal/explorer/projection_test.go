package explorer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
)

func TestProject(t *testing.T) {
	repo := mixedRaces()

	t.Run("initial state lists everyone in input order", func(t *testing.T) {
		p := explorer.Project(explorer.NewState(), repo)
		assert.Equal(t, explorer.ViewTable, p.View)
		assert.True(t, p.RaceSelectorVisible)
		assert.Equal(t, names(repo), names(p.Candidates))
		assert.Nil(t, p.Groups)
		assert.False(t, p.Empty)
		assert.False(t, p.Summary.Filtered)
		assert.Equal(t, 5, p.Summary.TotalCandidates)
	})

	t.Run("table view applies race, query and sort", func(t *testing.T) {
		s := explorer.NewState().
			SetRace(explorer.ParseRaceFilter("City - Council District 1")).
			SetSort(explorer.ColumnTotalContributions)
		p := explorer.Project(s, repo)
		assert.Equal(t, []string{"Dana Reyes", "Chris Nguyen"}, names(p.Candidates))
		assert.True(t, p.Summary.Filtered)
		assert.Equal(t, 6500.0, p.Summary.TotalRaised)

		p = explorer.Project(s.SetSort(explorer.ColumnTotalContributions), repo)
		assert.Equal(t, []string{"Chris Nguyen", "Dana Reyes"}, names(p.Candidates))
	})

	t.Run("race view groups, ignores the race selector, keeps the query", func(t *testing.T) {
		s := explorer.NewState().
			SetRace(explorer.ParseRaceFilter("City - Mayor")).
			SetQuery("e").
			SwitchView(explorer.ViewRace)
		p := explorer.Project(s, repo)

		assert.False(t, p.RaceSelectorVisible)
		assert.Equal(t, explorer.RaceFilter("City - Mayor"), p.Race)
		assert.Nil(t, p.Candidates)
		require.Len(t, p.Groups, 3, "Alma Ortiz does not match the query")
		assert.Equal(t, "City - Council District 1", p.Groups[0].Label)
		assert.Equal(t, []string{"Chris Nguyen", "Dana Reyes"}, names(p.Groups[0].Candidates))
		assert.Equal(t, "City - Council District 2", p.Groups[1].Label)
		assert.Equal(t, "County - School Board", p.Groups[2].Label)
		assert.Equal(t, 4, p.Summary.TotalCandidates)
		assert.True(t, p.Summary.Filtered)
	})

	t.Run("no matches is flagged as empty", func(t *testing.T) {
		p := explorer.Project(explorer.NewState().SetQuery("zzz"), repo)
		assert.True(t, p.Empty)
		assert.Empty(t, p.Candidates)
		assert.Equal(t, 0, p.Summary.TotalCandidates)

		p = explorer.Project(explorer.NewState().SetQuery("zzz").SwitchView(explorer.ViewRace), repo)
		assert.True(t, p.Empty)
		assert.Empty(t, p.Groups)
	})

	t.Run("open modal carries the candidate detail", func(t *testing.T) {
		s := explorer.NewState().OpenDetails(repo[2].ID(), repo)
		p := explorer.Project(s, repo)
		require.NotNil(t, p.Detail)
		assert.Equal(t, "Alma Ortiz", p.Detail.CandidateName)
		assert.Equal(t, "#", p.DetailLink, "plain jurisdiction names have no link")

		p = explorer.Project(s, mayorRace())
		assert.Nil(t, p.Detail, "detail disappears when the dataset no longer holds the candidate")
	})

	t.Run("clear filters returns to the full repository", func(t *testing.T) {
		s := explorer.NewState().SetQuery("ortiz").SetSort(explorer.ColumnRace).ClearFilters()
		p := explorer.Project(s, repo)
		assert.Equal(t, names(repo), names(p.Candidates))
		assert.False(t, p.Summary.Filtered)
	})
}
