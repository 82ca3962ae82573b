package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph-api/internal/catalog"
	"github.com/cinegraph/cinegraph-api/internal/config"
	"github.com/cinegraph/cinegraph-api/internal/database/models"
	"github.com/cinegraph/cinegraph-api/internal/usecase/ingest"
)

func importCommand() *cobra.Command {
	var since int64

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Pull new movies from the catalog feed into the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
			defer cancel()

			client, err := openGraph(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close(context.Background())

			ledger, db, err := openLedger(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			source := catalog.NewFeedAdapter(cfg.FeedURL, cfg.FeedUsername, cfg.FeedPassword, cfg.LogLevel)
			importer := ingest.NewImporter(source, client, ledger, cfg.ImportConcurrency, cfg.ImportBatchSize)

			if !cmd.Flags().Changed("since") {
				since = cfg.ImportSinceTimestamp
			}

			runErr := importer.Run(ctx, since)

			// Report the ledger state even when the run failed partway.
			if counts, sumErr := importer.Summary(ctx); sumErr == nil {
				fmt.Printf("Ledger: %d completed, %d failed, %d processing, %d pending\n",
					counts[models.ImportStatusCompleted],
					counts[models.ImportStatusFailed],
					counts[models.ImportStatusProcessing],
					counts[models.ImportStatusPending])
			}

			return runErr
		},
	}

	cmd.Flags().Int64Var(&since, "since", 0, "only import entries updated after this Unix timestamp (0 resumes from the ledger watermark)")

	return cmd
}
