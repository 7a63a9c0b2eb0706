package explorer

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
)

// SortColumn names a sortable table column. The zero value means unsorted.
type SortColumn string

// Sortable columns.
const (
	ColumnNone               SortColumn = ""
	ColumnCandidateName      SortColumn = "candidate_name"
	ColumnRace               SortColumn = "race"
	ColumnTotalContributions SortColumn = "total_contributions_sum"
	ColumnTotalExpenditures  SortColumn = "total_expenditures_sum"
	ColumnCashOnHand         SortColumn = "cash_on_hand"
	ColumnOutstandingDebt    SortColumn = "outstanding_debt"
	ColumnReportsFiled       SortColumn = "reports_filed"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection returns the direction for s, defaulting to Ascending for
// anything other than "desc".
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Descending)) {
		return Descending
	}
	return Ascending
}

// Valid reports whether c is a column Sort knows how to order by.
func (c SortColumn) Valid() bool {
	switch c {
	case ColumnCandidateName, ColumnRace,
		ColumnTotalContributions, ColumnTotalExpenditures,
		ColumnCashOnHand, ColumnOutstandingDebt, ColumnReportsFiled:
		return true
	}
	return false
}

func (c SortColumn) textual() bool {
	return c == ColumnCandidateName || c == ColumnRace
}

// sortKey pairs a candidate with its precomputed comparison key.
type sortKey struct {
	candidate model.Candidate
	text      string
	number    float64
}

// Sort returns a new slice with candidates ordered by column in direction dir.
// Text columns compare case-folded values with English collation; numeric
// columns compare values directly. Ties keep their input order. An unknown
// column returns a copy in input order.
func Sort(candidates []model.Candidate, column SortColumn, dir Direction) []model.Candidate {
	sorted := make([]model.Candidate, len(candidates))
	copy(sorted, candidates)
	if !column.Valid() {
		return sorted
	}

	fold := cases.Fold()
	keys := make([]sortKey, len(candidates))
	for i, c := range candidates {
		keys[i] = sortKey{candidate: c}
		switch column {
		case ColumnCandidateName:
			keys[i].text = fold.String(c.CandidateName)
		case ColumnRace:
			keys[i].text = fold.String(c.Jurisdiction + " " + c.Office + " " + c.District)
		default:
			keys[i].number = numericValue(c, column)
		}
	}

	var compare func(a, b sortKey) int
	if column.textual() {
		collator := collate.New(language.English)
		compare = func(a, b sortKey) int {
			return collator.CompareString(a.text, b.text)
		}
	} else {
		compare = func(a, b sortKey) int {
			switch {
			case a.number < b.number:
				return -1
			case a.number > b.number:
				return 1
			}
			return 0
		}
	}

	slices.SortStableFunc(keys, func(a, b sortKey) int {
		if dir == Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})

	for i, k := range keys {
		sorted[i] = k.candidate
	}
	return sorted
}

func numericValue(c model.Candidate, column SortColumn) float64 {
	switch column {
	case ColumnTotalContributions:
		return c.TotalContributionsSum
	case ColumnTotalExpenditures:
		return c.TotalExpendituresSum
	case ColumnCashOnHand:
		return c.CashOnHand
	case ColumnOutstandingDebt:
		return c.OutstandingDebt
	case ColumnReportsFiled:
		return float64(c.ReportsFiled)
	}
	return 0
}
