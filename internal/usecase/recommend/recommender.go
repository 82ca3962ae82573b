package recommend

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cinegraph/cinegraph-api/internal/domain/repository"
)

// DefaultLimit is the stock result-count policy applied by surfaces when a
// caller does not ask for a specific limit.
const DefaultLimit = 5

// Recommender answers movie recommendation queries over an injected graph
// store. It holds no per-request state and is safe for concurrent use.
type Recommender struct {
	genre        Extractor
	cast         Extractor
	ranker       *Ranker
	defaultLimit int
}

// NewRecommender wires the signal extractors and ranker around a graph store.
func NewRecommender(store repository.GraphStore, weights Weights, defaultLimit int) *Recommender {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &Recommender{
		genre:        NewGenreExtractor(store),
		cast:         NewCastExtractor(store),
		ranker:       NewRanker(weights),
		defaultLimit: defaultLimit,
	}
}

// DefaultLimit returns the configured result-count policy.
func (r *Recommender) DefaultLimit() int {
	return r.defaultLimit
}

// Recommend returns up to limit movies similar to the reference title,
// best-first. An unknown title yields an empty result, not an error; a
// non-positive limit or unknown strategy is rejected before the store is
// touched.
func (r *Recommender) Recommend(ctx context.Context, title string, strategy Strategy, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidLimit, limit)
	}

	extractors, err := r.extractorsFor(strategy)
	if err != nil {
		return nil, err
	}

	// Extractors run in parallel for the combined strategy; the first
	// failure cancels the sibling.
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	sets := make([][]Signal, 0, len(extractors))

	for _, extractor := range extractors {
		g.Go(func() error {
			signals, err := extractor.Extract(gctx, title)
			if err != nil {
				return err
			}
			mu.Lock()
			sets = append(sets, signals)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("recommendation for %q failed: %w", title, err)
	}

	results := r.ranker.Rank(strategy, mergeSignals(sets), limit)
	log.Printf("[Recommender] %s strategy produced %d results for %q", strategy, len(results), title)
	return results, nil
}

func (r *Recommender) extractorsFor(strategy Strategy) ([]Extractor, error) {
	switch strategy {
	case StrategyGenre:
		return []Extractor{r.genre}, nil
	case StrategyCast:
		return []Extractor{r.cast}, nil
	case StrategyCombined:
		return []Extractor{r.genre, r.cast}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
}

// mergeSignals unions per-extractor signal sets by title. A candidate seen
// by only one extractor keeps zero for the other axis; since extractors
// never emit zero counts, a candidate with zero on both axes cannot occur.
func mergeSignals(sets [][]Signal) []Signal {
	merged := make(map[string]Signal)
	for _, set := range sets {
		for _, s := range set {
			cur, ok := merged[s.Title]
			if !ok {
				merged[s.Title] = s
				continue
			}
			cur.Genres += s.Genres
			cur.Actors += s.Actors
			merged[s.Title] = cur
		}
	}

	out := make([]Signal, 0, len(merged))
	for _, s := range merged {
		out = append(out, s)
	}
	return out
}
