package explorer_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
)

func TestParseRaceFilter(t *testing.T) {
	assert.True(t, explorer.ParseRaceFilter("").IsAll())
	assert.True(t, explorer.ParseRaceFilter("all").IsAll())
	assert.Equal(t, explorer.RaceFilter("City - Mayor"), explorer.ParseRaceFilter("City - Mayor"))
}

func TestFilter(t *testing.T) {
	t.Run("query matches candidate name case-insensitively", func(t *testing.T) {
		got := explorer.Filter(mayorRace(), explorer.AllRaces, "b")
		assert.Equal(t, []string{"B"}, names(got))
	})

	t.Run("query matches committee name", func(t *testing.T) {
		got := explorer.Filter(mixedRaces(), explorer.AllRaces, "  FRIENDS ")
		assert.Equal(t, []string{"eli brooks"}, names(got))
	})

	t.Run("empty query returns race-filtered set unchanged", func(t *testing.T) {
		race := explorer.ParseRaceFilter("City - Council District 1")
		got := explorer.Filter(mixedRaces(), race, "   ")
		assert.Equal(t, []string{"Dana Reyes", "Chris Nguyen"}, names(got))
	})

	t.Run("race and query are combined", func(t *testing.T) {
		race := explorer.ParseRaceFilter("City - Council District 1")
		got := explorer.Filter(mixedRaces(), race, "nguyen")
		assert.Equal(t, []string{"Chris Nguyen"}, names(got))
	})

	t.Run("unknown race yields empty result", func(t *testing.T) {
		got := explorer.Filter(mixedRaces(), explorer.ParseRaceFilter("Nowhere - Dogcatcher"), "")
		assert.Empty(t, got)
	})

	t.Run("output is an order-preserving subset", func(t *testing.T) {
		all := mixedRaces()
		for _, label := range append(model.RaceLabels(all), "all") {
			race := explorer.ParseRaceFilter(label)
			for _, q := range []string{"", "e", "city", "LAM", "zzz"} {
				got := explorer.Filter(all, race, q)
				assertSubsequence(t, all, got)
				for _, c := range got {
					if !race.IsAll() {
						assert.Equal(t, label, c.Race().Label())
					}
					if q != "" {
						fq := strings.ToLower(q)
						assert.True(t,
							strings.Contains(strings.ToLower(c.CandidateName), fq) ||
								strings.Contains(strings.ToLower(c.CommitteeName), fq),
							"%q does not match %q", c.CandidateName, q)
					}
				}
			}
		}
	})

	t.Run("does not modify its input", func(t *testing.T) {
		all := mixedRaces()
		before := names(all)
		explorer.Filter(all, explorer.AllRaces, "a")
		if diff := cmp.Diff(before, names(all)); diff != "" {
			t.Errorf("input changed (-before +after):\n%s", diff)
		}
	})
}

func assertSubsequence(t *testing.T, all, sub []model.Candidate) {
	t.Helper()
	i := 0
	for _, c := range all {
		if i < len(sub) && c.ID() == sub[i].ID() {
			i++
		}
	}
	assert.Equal(t, len(sub), i, "result is not an order-preserving subset of the input")
}
