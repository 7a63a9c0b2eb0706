package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/config"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/database"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/logging"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/repository"
	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/service"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "campaign-finance-explorer",
	Short: "Campaign finance explorer backend",
	Long: `Serves aggregated campaign finance filings for browsing by race,
with per-session filter, sort and detail state.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, importCmd, statsCmd, keygenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openCatalog opens and migrates the database and loads the stored dataset.
// The caller closes the returned database.
func openCatalog(ctx context.Context) (*sql.DB, *service.CatalogService, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("connected to database", zap.String("path", cfg.Database.Path))

	if err := database.Migrate(db, logger); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	catalog := service.NewCatalogService(repository.NewCandidateRepository(db), logger)
	if err := catalog.Load(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return db, catalog, nil
}
