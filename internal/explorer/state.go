package explorer

import (
	"fmt"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/apperrors"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
)

// View is one of the two top-level display modes.
type View string

// Views.
const (
	ViewTable View = "table"
	ViewRace  View = "race"
)

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewTable, ViewRace:
		return View(s), nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidView, s)
}

// SortSpec is the active table sort. An empty Column means unsorted.
type SortSpec struct {
	Column    SortColumn `json:"column"`
	Direction Direction  `json:"direction"`
}

// State is the explorer's view state. Transitions are methods with value
// receivers that return the next state; a State is never modified in place.
type State struct {
	View  View               `json:"view"`
	Race  RaceFilter         `json:"race"`
	Query string             `json:"query"`
	Sort  SortSpec           `json:"sort"`
	Modal *model.CandidateID `json:"modal,omitempty"`
}

// NewState returns the initial state: table view, no filters, unsorted, modal
// closed.
func NewState() State {
	return State{
		View: ViewTable,
		Race: AllRaces,
		Sort: SortSpec{Column: ColumnNone, Direction: Ascending},
	}
}

// SetRace changes the race selector. The active view is kept.
func (s State) SetRace(race RaceFilter) State {
	s.Race = race
	return s
}

// SetQuery changes the free-text query. The active view is kept.
func (s State) SetQuery(query string) State {
	s.Query = query
	return s
}

// SetSort selects a table sort column. Picking the current column while it is
// ascending flips it to descending; any other pick sorts ascending. Unknown
// columns leave the state unchanged.
func (s State) SetSort(column SortColumn) State {
	if !column.Valid() {
		return s
	}
	dir := Ascending
	if s.Sort.Column == column && s.Sort.Direction == Ascending {
		dir = Descending
	}
	s.Sort = SortSpec{Column: column, Direction: dir}
	return s
}

// SwitchView activates v. The race selector keeps its value across views.
func (s State) SwitchView(v View) State {
	s.View = v
	return s
}

// ClearFilters resets race, query and sort to their initial values. The view
// and the modal are left alone.
func (s State) ClearFilters() State {
	initial := NewState()
	s.Race = initial.Race
	s.Query = initial.Query
	s.Sort = initial.Sort
	return s
}

// OpenDetails opens the detail modal for id when it resolves to a candidate
// in candidates. A miss leaves the state unchanged. Opening replaces any modal
// that is already open.
func (s State) OpenDetails(id model.CandidateID, candidates []model.Candidate) State {
	if _, ok := model.FindCandidate(candidates, id); !ok {
		return s
	}
	s.Modal = &id
	return s
}

// CloseDetails closes the detail modal.
func (s State) CloseDetails() State {
	s.Modal = nil
	return s
}

// ModalOpen reports whether a detail modal is open.
func (s State) ModalOpen() bool {
	return s.Modal != nil
}

// activeRace is the race filter that applies in the current view. Race view
// groups by race, so the selector is not applied there.
func (s State) activeRace() RaceFilter {
	if s.View == ViewRace {
		return AllRaces
	}
	return s.Race
}
