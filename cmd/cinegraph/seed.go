package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph-api/internal/catalog"
	"github.com/cinegraph/cinegraph-api/internal/config"
	"github.com/cinegraph/cinegraph-api/internal/usecase/ingest"
)

func seedCommand() *cobra.Command {
	var clearFirst bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in demo catalog into the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			client, err := openGraph(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close(context.Background())

			seeder := ingest.NewSeeder(client, cfg.SeedBatchSize)
			return seeder.Seed(ctx, catalog.Sample(), clearFirst)
		},
	}

	cmd.Flags().BoolVar(&clearFirst, "clear", false, "delete all existing nodes and relationships first")

	return cmd
}
