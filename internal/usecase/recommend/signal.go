package recommend

import (
	"context"
	"fmt"

	"github.com/cinegraph/cinegraph-api/internal/domain/repository"
)

// Signal is one candidate movie's overlap with the reference movie as
// measured by a single extractor. Counts are distinct counts; an extractor
// only emits candidates with a count of at least one.
type Signal struct {
	Title  string
	Year   int64
	Rating float64
	Genres int
	Actors int
}

// Extractor derives similarity signals of one kind from the graph store.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, title string) ([]Signal, error)
}

// GenreExtractor measures overlap through shared IN_GENRE edges.
type GenreExtractor struct {
	store repository.GraphStore
}

func NewGenreExtractor(store repository.GraphStore) *GenreExtractor {
	return &GenreExtractor{store: store}
}

func (e *GenreExtractor) Name() string { return "genre" }

func (e *GenreExtractor) Extract(ctx context.Context, title string) ([]Signal, error) {
	matches, err := e.store.SimilarByGenre(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("genre signal extraction failed: %w", err)
	}

	signals := make([]Signal, 0, len(matches))
	for _, m := range matches {
		signals = append(signals, Signal{
			Title:  m.Title,
			Year:   m.Year,
			Rating: m.Rating,
			Genres: int(m.SharedGenres),
		})
	}
	return signals, nil
}

// CastExtractor measures overlap through shared ACTED_IN edges.
type CastExtractor struct {
	store repository.GraphStore
}

func NewCastExtractor(store repository.GraphStore) *CastExtractor {
	return &CastExtractor{store: store}
}

func (e *CastExtractor) Name() string { return "cast" }

func (e *CastExtractor) Extract(ctx context.Context, title string) ([]Signal, error) {
	matches, err := e.store.SimilarByCast(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("cast signal extraction failed: %w", err)
	}

	signals := make([]Signal, 0, len(matches))
	for _, m := range matches {
		signals = append(signals, Signal{
			Title:  m.Title,
			Year:   m.Year,
			Rating: m.Rating,
			Actors: int(m.SharedActors),
		})
	}
	return signals, nil
}
