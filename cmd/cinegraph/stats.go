package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph-api/internal/config"
)

func statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show node and relationship counts for the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
			defer cancel()

			client, err := openGraph(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close(context.Background())

			stats, err := client.Statistics(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Movies:        %d\n", stats.Movies)
			fmt.Printf("People:        %d\n", stats.People)
			fmt.Printf("Genres:        %d\n", stats.Genres)
			fmt.Printf("Relationships: %d\n", stats.Relationships)

			counts, err := client.RelationshipCounts(ctx)
			if err != nil {
				return err
			}
			for _, rel := range []string{"DIRECTED", "ACTED_IN", "IN_GENRE"} {
				fmt.Printf("  %-10s %d\n", rel, counts[rel])
			}
			return nil
		},
	}
}
