package explorer

import (
	"strings"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
)

// Projection is the render-ready output of a State over a dataset. Exactly one
// of Candidates (table view) or Groups (race view) is populated.
type Projection struct {
	View                View              `json:"view"`
	Race                RaceFilter        `json:"race"`
	Query               string            `json:"query"`
	Sort                SortSpec          `json:"sort"`
	RaceSelectorVisible bool              `json:"raceSelectorVisible"`
	Summary             Summary           `json:"summary"`
	Candidates          []model.Candidate `json:"candidates,omitempty"`
	Groups              []RaceGroup       `json:"groups,omitempty"`
	Empty               bool              `json:"empty"`
	Detail              *model.Candidate  `json:"detail,omitempty"`
	DetailLink          string            `json:"detailJurisdictionUrl,omitempty"`
}

// Project renders s against candidates.
func Project(s State, candidates []model.Candidate) Projection {
	race := s.activeRace()
	filtered := Filter(candidates, race, s.Query)

	p := Projection{
		View:                s.View,
		Race:                s.Race,
		Query:               s.Query,
		Sort:                s.Sort,
		RaceSelectorVisible: s.View != ViewRace,
		Summary:             Summarize(filtered),
		Empty:               len(filtered) == 0,
	}
	p.Summary.Filtered = !race.IsAll() || strings.TrimSpace(s.Query) != ""

	switch s.View {
	case ViewRace:
		p.Groups = GroupByRace(filtered)
	default:
		p.Candidates = Sort(filtered, s.Sort.Column, s.Sort.Direction)
	}

	if s.Modal != nil {
		if c, ok := model.FindCandidate(candidates, *s.Modal); ok {
			p.Detail = &c
			p.DetailLink = model.JurisdictionURL(c.Jurisdiction)
		}
	}
	return p
}
