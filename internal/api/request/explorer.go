package request

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
)

// ProjectionQuery holds the parsed query parameters of the stateless explorer
// endpoints.
type ProjectionQuery struct {
	Race      explorer.RaceFilter
	Query     string
	Column    explorer.SortColumn
	Direction explorer.Direction
}

// State returns the explorer state described by q in the given view.
func (q ProjectionQuery) State(view explorer.View) explorer.State {
	st := explorer.NewState().
		SwitchView(view).
		SetRace(q.Race).
		SetQuery(q.Query)
	if q.Column.Valid() {
		st.Sort = explorer.SortSpec{Column: q.Column, Direction: q.Direction}
	}
	return st
}

// ParseProjectionQuery converts raw query string parameters into a
// ProjectionQuery. All parameters are optional.
//
// Validation rules:
//   - race: a race label, empty or "all" for every race
//   - sort: a sortable column; empty or unknown columns leave the rows in
//     dataset order
//   - dir: "asc" or "desc" (defaults to "asc")
func ParseProjectionQuery(raceParam, queryParam, sortParam, dirParam string) (*ProjectionQuery, error) {
	q := &ProjectionQuery{
		Race:      explorer.ParseRaceFilter(raceParam),
		Query:     queryParam,
		Direction: explorer.Ascending,
	}

	if sortParam != "" {
		q.Column = explorer.SortColumn(strings.TrimSpace(strings.ToLower(sortParam)))
	}

	if dirParam != "" {
		switch strings.ToLower(dirParam) {
		case string(explorer.Ascending):
			q.Direction = explorer.Ascending
		case string(explorer.Descending):
			q.Direction = explorer.Descending
		default:
			return nil, fmt.Errorf("invalid sort direction: %s (must be 'asc' or 'desc')", dirParam)
		}
	}

	return q, nil
}

// SetRaceRequest represents the request body for changing the race selector
type SetRaceRequest struct {
	Race string `json:"race"`
}

// SetQueryRequest represents the request body for changing the search text
type SetQueryRequest struct {
	Query string `json:"query"`
}

// SetSortRequest represents the request body for picking a sort column
type SetSortRequest struct {
	Column string `json:"column"`
}

// SetViewRequest represents the request body for switching views
type SetViewRequest struct {
	View string `json:"view"`
}

// DetailsRequest identifies the candidate whose details should open
type DetailsRequest struct {
	CandidateName string `json:"candidateName"`
	Jurisdiction  string `json:"jurisdiction"`
	Office        string `json:"office"`
	District      string `json:"district"`
}

// RestoreSessionRequest represents the request body for reopening a shared view
type RestoreSessionRequest struct {
	Token string `json:"token"`
}
