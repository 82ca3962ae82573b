package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph-api/internal/config"
)

func checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify graph store connectivity and data presence",
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

			if err := client.Verify(ctx); err != nil {
				return err
			}
			fmt.Printf("Graph store at %s is reachable.\n", cfg.Neo4jURI)

			stats, err := client.Statistics(ctx)
			if err != nil {
				return err
			}
			if stats.Movies == 0 {
				fmt.Println("Graph is empty. Run 'cinegraph seed' to load the demo catalog.")
				return nil
			}
			fmt.Printf("%d movies, %d people, %d genres.\n", stats.Movies, stats.People, stats.Genres)
			return nil
		},
	}
}
