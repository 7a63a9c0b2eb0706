package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [csv]",
	Short: "Import a filings CSV, replacing the stored dataset",
	Long: `Import a filings CSV and replace the stored dataset.

Without an argument the configured DATA_CSV_PATH is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Data.CSVPath
		if len(args) == 1 {
			path = args[0]
		}

		db, catalog, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		imp, err := catalog.ImportFile(cmd.Context(), path)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s candidates and %s reports from %s\n",
			humanize.Comma(int64(imp.CandidateCount)), humanize.Comma(int64(imp.ReportCount)), imp.Source)
		return nil
	},
}
