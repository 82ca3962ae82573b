package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/cinegraph/cinegraph-api/internal/catalog"
	"github.com/cinegraph/cinegraph-api/internal/domain/repository"
)

const defaultSeedBatch = 100

// Seeder loads a catalog dataset into the movie graph.
type Seeder struct {
	graph     repository.GraphAdmin
	batchSize int
}

// NewSeeder creates a seeder writing through the given graph admin handle.
func NewSeeder(graph repository.GraphAdmin, batchSize int) *Seeder {
	if batchSize <= 0 {
		batchSize = defaultSeedBatch
	}
	return &Seeder{graph: graph, batchSize: batchSize}
}

// Seed pushes a dataset into the graph. Nodes go in before relationships so
// every link can match both endpoints. With reset set, existing data is
// removed first.
func (s *Seeder) Seed(ctx context.Context, ds catalog.Dataset, reset bool) error {
	if reset {
		if err := s.graph.Clear(ctx); err != nil {
			return fmt.Errorf("clearing graph failed: %w", err)
		}
	}

	if err := s.graph.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("schema setup failed: %w", err)
	}

	genres, err := s.graph.UpsertGenres(ctx, ds.Genres)
	if err != nil {
		return fmt.Errorf("genre seeding failed: %w", err)
	}
	log.Printf("[Seeder] Upserted %d genres", genres)

	people, err := s.graph.UpsertPeople(ctx, ds.People)
	if err != nil {
		return fmt.Errorf("person seeding failed: %w", err)
	}
	log.Printf("[Seeder] Upserted %d people", people)

	movies := 0
	for start := 0; start < len(ds.Movies); start += s.batchSize {
		end := min(start+s.batchSize, len(ds.Movies))
		n, err := s.graph.UpsertMovies(ctx, ds.Movies[start:end])
		if err != nil {
			return fmt.Errorf("movie batch %d-%d failed: %w", start, end, err)
		}
		movies += n
	}
	log.Printf("[Seeder] Upserted %d movies in batches of %d", movies, s.batchSize)

	if err := s.graph.LinkDirected(ctx, ds.Directed); err != nil {
		return fmt.Errorf("DIRECTED links failed: %w", err)
	}
	if err := s.graph.LinkActedIn(ctx, ds.ActedIn); err != nil {
		return fmt.Errorf("ACTED_IN links failed: %w", err)
	}
	if err := s.graph.LinkInGenre(ctx, ds.InGenre); err != nil {
		return fmt.Errorf("IN_GENRE links failed: %w", err)
	}

	counts, err := s.graph.RelationshipCounts(ctx)
	if err != nil {
		return fmt.Errorf("relationship verification failed: %w", err)
	}
	log.Printf("[Seeder] Relationships: DIRECTED=%d ACTED_IN=%d IN_GENRE=%d",
		counts["DIRECTED"], counts["ACTED_IN"], counts["IN_GENRE"])

	return nil
}
