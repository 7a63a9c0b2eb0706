package validation

import (
	"strings"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/api/request"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
)

// ValidateSetSort only requires a column. Columns that cannot be sorted are
// passed on and ignored by the state machine.
func ValidateSetSort(req request.SetSortRequest) error {
	if strings.TrimSpace(req.Column) == "" {
		return &Error{Fields: map[string]string{"column": "column is required"}}
	}
	return nil
}

func ValidateSetView(req request.SetViewRequest) error {
	if _, err := explorer.ParseView(req.View); err != nil {
		return &Error{Fields: map[string]string{"view": "view must be 'table' or 'race'"}}
	}
	return nil
}

func ValidateDetails(req request.DetailsRequest) error {
	errors := make(map[string]string)

	// District is optional
	if strings.TrimSpace(req.CandidateName) == "" {
		errors["candidateName"] = "candidateName is required"
	}
	if strings.TrimSpace(req.Jurisdiction) == "" {
		errors["jurisdiction"] = "jurisdiction is required"
	}
	if strings.TrimSpace(req.Office) == "" {
		errors["office"] = "office is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateRestoreSession(req request.RestoreSessionRequest) error {
	if strings.TrimSpace(req.Token) == "" {
		return &Error{Fields: map[string]string{"token": "token is required"}}
	}
	return nil
}
