package resilience

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinegraph/cinegraph-api/internal/domain/repository"
)

// GuardedStore wraps a GraphStore with a circuit breaker. Only store-health
// failures trip the breaker: an unavailable or timed-out store is counted,
// while application errors like a missing movie prove the store answered
// and reset the failure streak. A rejected call surfaces as the unavailable
// kind with ErrCircuitOpen still in the chain.
type GuardedStore struct {
	inner   repository.GraphStore
	breaker *CircuitBreaker
}

var _ repository.GraphStore = (*GuardedStore)(nil)

// NewGuardedStore wraps store with breaker.
func NewGuardedStore(store repository.GraphStore, breaker *CircuitBreaker) *GuardedStore {
	return &GuardedStore{inner: store, breaker: breaker}
}

func (g *GuardedStore) execute(call func() error) error {
	var appErr error
	err := g.breaker.Execute(func() error {
		if callErr := call(); callErr != nil {
			if errors.Is(callErr, repository.ErrUnavailable) || errors.Is(callErr, repository.ErrTimeout) {
				return callErr
			}
			appErr = callErr
		}
		return nil
	})
	if appErr != nil {
		return appErr
	}
	if errors.Is(err, ErrCircuitOpen) {
		return fmt.Errorf("graph store calls suspended: %w: %w", repository.ErrUnavailable, err)
	}
	return err
}

func (g *GuardedStore) SimilarByGenre(ctx context.Context, title string) ([]repository.GenreMatch, error) {
	var out []repository.GenreMatch
	err := g.execute(func() error {
		var callErr error
		out, callErr = g.inner.SimilarByGenre(ctx, title)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GuardedStore) SimilarByCast(ctx context.Context, title string) ([]repository.CastMatch, error) {
	var out []repository.CastMatch
	err := g.execute(func() error {
		var callErr error
		out, callErr = g.inner.SimilarByCast(ctx, title)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GuardedStore) AllMovies(ctx context.Context) ([]repository.MovieRow, error) {
	var out []repository.MovieRow
	err := g.execute(func() error {
		var callErr error
		out, callErr = g.inner.AllMovies(ctx)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GuardedStore) MovieDetails(ctx context.Context, title string) (*repository.MovieDetails, error) {
	var out *repository.MovieDetails
	err := g.execute(func() error {
		var callErr error
		out, callErr = g.inner.MovieDetails(ctx, title)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GuardedStore) MoviesByDirector(ctx context.Context, name string) ([]repository.MovieRow, error) {
	var out []repository.MovieRow
	err := g.execute(func() error {
		var callErr error
		out, callErr = g.inner.MoviesByDirector(ctx, name)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GuardedStore) MoviesByActor(ctx context.Context, name string) ([]repository.MovieRow, error) {
	var out []repository.MovieRow
	err := g.execute(func() error {
		var callErr error
		out, callErr = g.inner.MoviesByActor(ctx, name)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GuardedStore) Statistics(ctx context.Context) (*repository.Stats, error) {
	var out *repository.Stats
	err := g.execute(func() error {
		var callErr error
		out, callErr = g.inner.Statistics(ctx)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GuardedStore) Verify(ctx context.Context) error {
	return g.execute(func() error {
		return g.inner.Verify(ctx)
	})
}

// Close shuts down the inner store directly; a tripped breaker must not
// block teardown.
func (g *GuardedStore) Close(ctx context.Context) error {
	return g.inner.Close(ctx)
}
