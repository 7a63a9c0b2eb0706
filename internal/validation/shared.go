package validation

import (
	"fmt"
	"slices"
	"strings"
)

// Error reports request fields that failed validation, keyed by their JSON
// name. Handlers send Fields as the error details.
type Error struct {
	Fields map[string]string
}

// Error lists the field messages in field order so log lines are stable.
func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}
