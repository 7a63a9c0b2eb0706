package repository

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "written by ReplaceAll",
			value: "2026-03-01T12:30:45.123456789Z",
			want:  time.Date(2026, 3, 1, 12, 30, 45, 123456789, time.UTC),
		},
		{
			name:  "offset is normalised to UTC",
			value: "2026-03-01T14:30:45+02:00",
			want:  time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name:  "sqlite CURRENT_TIMESTAMP",
			value: "2026-03-01 12:30:45",
			want:  time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC),
		},
		{name: "date only", value: "2026-03-01", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(tt.want) || got.Location() != time.UTC {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
