package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph-api/internal/config"
	"github.com/cinegraph/cinegraph-api/internal/usecase/recommend"
)

func recommendCommand() *cobra.Command {
	var (
		strategy string
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend movies similar to the given title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			parsed, err := recommend.ParseStrategy(strategy)
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

			weights := recommend.Weights{Genre: cfg.GenreWeight, Cast: cfg.CastWeight}
			rec := recommend.NewRecommender(client, weights, cfg.DefaultLimit)

			// An unset flag means the configured default. An explicit
			// --limit 0 stays zero and is rejected downstream.
			if !cmd.Flags().Changed("limit") {
				limit = rec.DefaultLimit()
			}

			results, err := rec.Recommend(ctx, args[0], parsed, limit)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			if len(results) == 0 {
				fmt.Printf("No recommendations for %q.\n", args[0])
				return nil
			}

			fmt.Printf("Top %d recommendations for %q (%s):\n", len(results), args[0], parsed)
			for i, r := range results {
				fmt.Printf("%2d. %s (%d)  score=%d shared_genres=%d shared_actors=%d\n",
					i+1, r.Title, r.Year, r.Score, r.SharedGenres, r.SharedActors)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "combined", "similarity strategy: genre, cast or combined")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of recommendations")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")

	return cmd
}
