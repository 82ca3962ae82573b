// Package main provides the cinegraph CLI for seeding, importing and
// querying the movie graph.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/cinegraph/cinegraph-api/internal/config"
	"github.com/cinegraph/cinegraph-api/internal/database/bunstore"
	neo4jpkg "github.com/cinegraph/cinegraph-api/internal/neo4j"
)

func main() {
	root := &cobra.Command{
		Use:           "cinegraph",
		Short:         "Seed, import and query the movie recommendation graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		recommendCommand(),
		moviesCommand(),
		seedCommand(),
		importCommand(),
		checkCommand(),
		statsCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openGraph(ctx context.Context, cfg *config.Config) (*neo4jpkg.Client, error) {
	return neo4jpkg.NewClient(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
}

// openLedger opens the import ledger database named by CINE_LEDGER_DSN.
// The caller owns both handles and must close the *sql.DB.
func openLedger(cfg *config.Config) (*bunstore.BunStore, *sql.DB, error) {
	db, err := sql.Open(sqliteshim.ShimName, cfg.LedgerDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open import ledger: %w", err)
	}

	store, err := bunstore.NewBunStore(db, sqlitedialect.New())
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, db, nil
}
