package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph-api/internal/config"
)

func moviesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "movies [title]",
		Short: "List the catalog, or show one movie with its cast and crew",
		Args:  cobra.MaximumNArgs(1),
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

			if len(args) == 1 {
				details, err := client.MovieDetails(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s (%d)  rating %.1f\n", details.Title, details.Year, details.Rating)
				if details.Tagline != "" {
					fmt.Printf("  %q\n", details.Tagline)
				}
				fmt.Printf("  Genres:    %s\n", strings.Join(details.Genres, ", "))
				fmt.Printf("  Directors: %s\n", strings.Join(details.Directors, ", "))
				fmt.Printf("  Cast:      %s\n", strings.Join(details.Cast, ", "))
				return nil
			}

			movies, err := client.AllMovies(ctx)
			if err != nil {
				return err
			}
			for _, m := range movies {
				fmt.Printf("%-30s %d  %.1f  [%s]\n", m.Title, m.Year, m.Rating, strings.Join(m.Genres, ", "))
			}
			fmt.Printf("%d movies in the catalog.\n", len(movies))
			return nil
		},
	}
}
