package explorer

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
)

// RaceFilter selects a single race by its canonical label. The zero value,
// AllRaces, applies no race filtering.
type RaceFilter string

// AllRaces is the sentinel meaning "no race filter".
const AllRaces RaceFilter = ""

// allRacesWire is the value the race selector sends for "no race filter".
const allRacesWire = "all"

// ParseRaceFilter converts a race selector value into a RaceFilter. Both the
// empty string and "all" mean AllRaces; anything else is taken as a label.
func ParseRaceFilter(value string) RaceFilter {
	if value == "" || value == allRacesWire {
		return AllRaces
	}
	return RaceFilter(value)
}

// IsAll reports whether f applies no race filtering.
func (f RaceFilter) IsAll() bool {
	return f == AllRaces
}

// Matches reports whether c runs in the race selected by f.
func (f RaceFilter) Matches(c model.Candidate) bool {
	return f.IsAll() || c.Race().Label() == string(f)
}

// Filter returns the candidates that run in the selected race and whose
// candidate or committee name contains query, ignoring case. The query is
// trimmed first; an empty query matches everyone. Relative order is kept.
func Filter(candidates []model.Candidate, race RaceFilter, query string) []model.Candidate {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	filtered := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !race.Matches(c) {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(c.CandidateName), needle) &&
			!strings.Contains(fold.String(c.CommitteeName), needle) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}
