package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/explorer"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a summary of the stored dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, catalog, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		printStats(cmd.OutOrStdout(), catalog.Snapshot())
		return nil
	},
}

func printStats(w io.Writer, snap *service.Snapshot) {
	if snap.Source == "" {
		fmt.Fprintln(w, "No dataset imported yet.")
		return
	}

	sum := explorer.Summarize(snap.Candidates)
	fmt.Fprintf(w, "Source:      %s (loaded %s)\n", snap.Source, humanize.Time(snap.LoadedAt))
	fmt.Fprintf(w, "Candidates:  %s (%s with reports)\n", humanize.Comma(int64(sum.TotalCandidates)), humanize.Comma(int64(sum.WithReports)))
	fmt.Fprintf(w, "Races:       %s\n", humanize.Comma(int64(len(snap.Races))))
	fmt.Fprintf(w, "Raised:      $%s\n", humanize.CommafWithDigits(sum.TotalRaised, 2))
	fmt.Fprintf(w, "Spent:       $%s\n", humanize.CommafWithDigits(sum.TotalSpent, 2))
}
