package repository

import (
	"fmt"
	"time"
)

// timestampLayouts are the forms imported_at may take: the RFC 3339 value
// written by ReplaceAll, or SQLite's CURRENT_TIMESTAMP form for rows written
// by hand.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// parseTimestamp reads a stored timestamp as UTC.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp %q", value)
}
