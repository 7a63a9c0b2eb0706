package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/testutil"
)

func TestPrintStats(t *testing.T) {
	t.Run("empty dataset", func(t *testing.T) {
		var buf bytes.Buffer
		printStats(&buf, &service.Snapshot{})

		if !strings.Contains(buf.String(), "No dataset imported yet") {
			t.Errorf("Unexpected output: %q", buf.String())
		}
	})

	t.Run("loaded dataset", func(t *testing.T) {
		var buf bytes.Buffer
		printStats(&buf, &service.Snapshot{
			Candidates: testutil.SampleCandidates(),
			Races:      []string{"a", "b", "c"},
			Source:     "filings.csv",
			LoadedAt:   time.Now().Add(-2 * time.Hour),
		})

		out := buf.String()
		for _, want := range []string{
			"filings.csv (loaded 2 hours ago)",
			"Candidates:  4 (3 with reports)",
			"Races:       3",
			"Raised:      $18,500",
			"Spent:       $13,900",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected output to contain %q, got:\n%s", want, out)
			}
		}
	})
}
