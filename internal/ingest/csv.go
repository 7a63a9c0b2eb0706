// Package ingest turns the filing CSV export into aggregated candidate
// records.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/apperrors"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/model"
)

// Column names in the filing export.
const (
	colCandidateName         = "candidate_name"
	colCommitteeName         = "committee_name"
	colJurisdiction          = "jurisdiction"
	colOffice                = "office"
	colDistrict              = "district"
	colPeriodStart           = "period_start"
	colPeriodEnd             = "period_end"
	colDateFiled             = "date_filed"
	colMonetaryContributions = "monetary_contributions"
	colLoansReceived         = "loans_received"
	colTotalContributions    = "total_contributions"
	colTotalExpenditures     = "total_expenditures"
	colCashOnHand            = "cash_on_hand"
	colOutstandingDebt       = "outstanding_debt"
	colLink                  = "link"
)

var requiredColumns = []string{colCandidateName, colJurisdiction, colOffice}

// Layouts accepted in the date_filed column.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseFile reads and aggregates the CSV file at path.
func ParseFile(path string) ([]model.Candidate, error) {
	f, err := os.Open(path) //#nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads filing rows from r and aggregates them into one candidate per
// identity tuple, in order of first appearance.
//
// Only rows with a monetary_contributions value count as filed reports. Sums
// accumulate across counted rows; cash on hand, outstanding debt, the latest
// filing date and the filing link follow the most recently filed report, with
// later rows winning ties.
func Parse(r io.Reader) ([]model.Candidate, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file is empty", apperrors.ErrInvalidCSVHeaders)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[cleanHeader(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", apperrors.ErrInvalidCSVHeaders, name)
		}
	}

	agg := newAggregator()
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		row := csvRow{columns: columns, record: record}
		if err := agg.add(row); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	return agg.candidates(), nil
}

// cleanHeader strips whitespace and byte order marks from a header cell.
func cleanHeader(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "\ufeff", ""))
}

type csvRow struct {
	columns map[string]int
	record  []string
}

func (r csvRow) get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

func (r csvRow) amount(column string) (float64, error) {
	v, err := ParseCurrency(r.get(column))
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}
	return v, nil
}

// ParseCurrency parses amounts such as "$1,234.50". Empty cells are 0.
func ParseCurrency(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	if cleaned == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, s)
	}
	return v, nil
}

func parseFilingDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type aggregator struct {
	order  []model.CandidateID
	byID   map[model.CandidateID]*model.Candidate
	latest map[model.CandidateID]time.Time
}

func newAggregator() *aggregator {
	return &aggregator{
		byID:   make(map[model.CandidateID]*model.Candidate),
		latest: make(map[model.CandidateID]time.Time),
	}
}

func (a *aggregator) add(row csvRow) error {
	id := model.CandidateID{
		CandidateName: row.get(colCandidateName),
		Jurisdiction:  row.get(colJurisdiction),
		Office:        row.get(colOffice),
		District:      row.get(colDistrict),
	}

	c, ok := a.byID[id]
	if !ok {
		c = &model.Candidate{
			CandidateName: id.CandidateName,
			CommitteeName: row.get(colCommitteeName),
			Jurisdiction:  id.Jurisdiction,
			Office:        id.Office,
			District:      id.District,
			Link:          row.get(colLink),
			Reports:       []model.Report{},
		}
		a.byID[id] = c
		a.order = append(a.order, id)
	}

	// Placeholder rows list a candidate that has not filed yet.
	if row.get(colMonetaryContributions) == "" {
		return nil
	}

	report := model.Report{
		Period:    row.get(colPeriodStart) + " - " + row.get(colPeriodEnd),
		DateFiled: row.get(colDateFiled),
		Link:      row.get(colLink),
	}
	amounts := []struct {
		column string
		dst    *float64
	}{
		{colMonetaryContributions, &report.MonetaryContributions},
		{colLoansReceived, &report.LoansReceived},
		{colTotalContributions, &report.TotalContributions},
		{colTotalExpenditures, &report.TotalExpenditures},
		{colCashOnHand, &report.CashOnHand},
		{colOutstandingDebt, &report.OutstandingDebt},
	}
	for _, amt := range amounts {
		v, err := row.amount(amt.column)
		if err != nil {
			return err
		}
		*amt.dst = v
	}

	c.TotalMonetaryContributions += report.MonetaryContributions
	c.TotalLoansReceived += report.LoansReceived
	c.TotalContributionsSum += report.TotalContributions
	c.TotalExpendituresSum += report.TotalExpenditures
	c.ReportsFiled++

	// Unparseable dates never become the latest filing.
	if filed, ok := parseFilingDate(report.DateFiled); ok && !filed.Before(a.latest[id]) {
		a.latest[id] = filed
		c.CashOnHand = report.CashOnHand
		c.OutstandingDebt = report.OutstandingDebt
		c.LatestDateFiled = report.DateFiled
		if report.Link != "" {
			c.Link = report.Link
		}
	}

	c.Reports = append(c.Reports, report)
	return nil
}

func (a *aggregator) candidates() []model.Candidate {
	out := make([]model.Candidate, len(a.order))
	for i, id := range a.order {
		out[i] = *a.byID[id]
	}
	return out
}
