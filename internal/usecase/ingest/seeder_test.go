package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cinegraph/cinegraph-api/internal/catalog"
	"github.com/cinegraph/cinegraph-api/internal/domain/repository"
)

// mockGraphAdmin records every write it receives. The importer runs entries
// concurrently, so all state is mutex guarded.
type mockGraphAdmin struct {
	mu           sync.Mutex
	cleared      bool
	schemaCalled bool
	genres       []repository.GenreSeed
	people       []repository.PersonSeed
	movies       []repository.MovieSeed
	directed     []repository.Link
	actedIn      []repository.Link
	inGenre      []repository.Link
	movieBatches int

	genreErr error
	movieErr error
	linkErr  error
}

func (m *mockGraphAdmin) EnsureSchema(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemaCalled = true
	return nil
}

func (m *mockGraphAdmin) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = true
	return nil
}

func (m *mockGraphAdmin) UpsertGenres(ctx context.Context, genres []repository.GenreSeed) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.genreErr != nil {
		return 0, m.genreErr
	}
	m.genres = append(m.genres, genres...)
	return len(genres), nil
}

func (m *mockGraphAdmin) UpsertPeople(ctx context.Context, people []repository.PersonSeed) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people = append(m.people, people...)
	return len(people), nil
}

func (m *mockGraphAdmin) UpsertMovies(ctx context.Context, movies []repository.MovieSeed) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.movieErr != nil {
		return 0, m.movieErr
	}
	m.movieBatches++
	m.movies = append(m.movies, movies...)
	return len(movies), nil
}

func (m *mockGraphAdmin) LinkDirected(ctx context.Context, links []repository.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.linkErr != nil {
		return m.linkErr
	}
	m.directed = append(m.directed, links...)
	return nil
}

func (m *mockGraphAdmin) LinkActedIn(ctx context.Context, links []repository.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.linkErr != nil {
		return m.linkErr
	}
	m.actedIn = append(m.actedIn, links...)
	return nil
}

func (m *mockGraphAdmin) LinkInGenre(ctx context.Context, links []repository.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.linkErr != nil {
		return m.linkErr
	}
	m.inGenre = append(m.inGenre, links...)
	return nil
}

func (m *mockGraphAdmin) RelationshipCounts(ctx context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int64{
		"DIRECTED": int64(len(m.directed)),
		"ACTED_IN": int64(len(m.actedIn)),
		"IN_GENRE": int64(len(m.inGenre)),
	}, nil
}

func TestSeeder_Success(t *testing.T) {
	// Arrange
	graph := &mockGraphAdmin{}
	seeder := NewSeeder(graph, 100)

	// Act
	err := seeder.Seed(context.Background(), catalog.Sample(), false)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if graph.cleared {
		t.Error("Seed without reset must not clear the graph")
	}
	if !graph.schemaCalled {
		t.Error("Expected schema setup before writes")
	}
	if len(graph.genres) != 5 {
		t.Errorf("Expected 5 genres, got %d", len(graph.genres))
	}
	if len(graph.people) != 10 {
		t.Errorf("Expected 10 people, got %d", len(graph.people))
	}
	if len(graph.movies) != 10 {
		t.Errorf("Expected 10 movies, got %d", len(graph.movies))
	}
	if len(graph.directed) != 8 || len(graph.actedIn) != 10 || len(graph.inGenre) != 20 {
		t.Errorf("Unexpected relationship counts: %d/%d/%d",
			len(graph.directed), len(graph.actedIn), len(graph.inGenre))
	}
}

func TestSeeder_ResetClearsFirst(t *testing.T) {
	graph := &mockGraphAdmin{}
	seeder := NewSeeder(graph, 100)

	if err := seeder.Seed(context.Background(), catalog.Sample(), true); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !graph.cleared {
		t.Error("Seed with reset must clear the graph first")
	}
}

func TestSeeder_BatchesMovies(t *testing.T) {
	graph := &mockGraphAdmin{}
	seeder := NewSeeder(graph, 3)

	// 10 movies with batch size 3 means 4 batches.
	if err := seeder.Seed(context.Background(), catalog.Sample(), false); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if graph.movieBatches != 4 {
		t.Errorf("Expected 4 movie batches, got %d", graph.movieBatches)
	}
	if len(graph.movies) != 10 {
		t.Errorf("Batching must not drop movies, got %d", len(graph.movies))
	}
}

func TestSeeder_GenreFailureStopsRun(t *testing.T) {
	graph := &mockGraphAdmin{genreErr: errors.New("genre write refused")}
	seeder := NewSeeder(graph, 100)

	err := seeder.Seed(context.Background(), catalog.Sample(), false)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if len(graph.people) != 0 {
		t.Error("Failed genre seeding must stop before people")
	}
}

func TestSeeder_LinkFailurePropagates(t *testing.T) {
	graph := &mockGraphAdmin{linkErr: errors.New("link refused")}
	seeder := NewSeeder(graph, 100)

	err := seeder.Seed(context.Background(), catalog.Sample(), false)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
}
