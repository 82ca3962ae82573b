package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cinegraph/cinegraph-api/internal/domain/repository"
	"github.com/cinegraph/cinegraph-api/internal/resilience"
	"github.com/cinegraph/cinegraph-api/internal/usecase/recommend"
)

// stubStore serves a fixed three-movie catalog: Inception shares Sci-Fi
// with Interstellar and Leonardo DiCaprio with Titanic.
type stubStore struct {
	verifyErr error
	failWith  error
}

func (s *stubStore) SimilarByGenre(ctx context.Context, title string) ([]repository.GenreMatch, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if title != "Inception" {
		return nil, nil
	}
	return []repository.GenreMatch{
		{Title: "Interstellar", Year: 2014, Rating: 8.7, SharedGenres: 1},
	}, nil
}

func (s *stubStore) SimilarByCast(ctx context.Context, title string) ([]repository.CastMatch, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if title != "Inception" {
		return nil, nil
	}
	return []repository.CastMatch{
		{Title: "Titanic", Year: 1997, Rating: 7.9, SharedActors: 1},
	}, nil
}

func (s *stubStore) AllMovies(ctx context.Context) ([]repository.MovieRow, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return []repository.MovieRow{
		{Title: "Inception", Year: 2010, Rating: 8.8, Genres: []string{"Sci-Fi", "Action"}},
		{Title: "Interstellar", Year: 2014, Rating: 8.7, Genres: []string{"Sci-Fi", "Drama"}},
		{Title: "Titanic", Year: 1997, Rating: 7.9, Genres: []string{"Drama", "Romance"}},
	}, nil
}

func (s *stubStore) MovieDetails(ctx context.Context, title string) (*repository.MovieDetails, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if title != "Inception" {
		return nil, fmt.Errorf("movie %q: %w", title, repository.ErrNotFound)
	}
	return &repository.MovieDetails{
		MovieRow: repository.MovieRow{
			Title:   "Inception",
			Year:    2010,
			Rating:  8.8,
			Tagline: "Your mind is the scene of the crime",
			Genres:  []string{"Sci-Fi", "Action"},
		},
		Directors: []string{"Christopher Nolan"},
		Cast:      []string{"Leonardo DiCaprio"},
	}, nil
}

func (s *stubStore) MoviesByDirector(ctx context.Context, name string) ([]repository.MovieRow, error) {
	if name != "Christopher Nolan" {
		return nil, nil
	}
	return []repository.MovieRow{
		{Title: "Interstellar", Year: 2014, Rating: 8.7},
		{Title: "Inception", Year: 2010, Rating: 8.8},
	}, nil
}

func (s *stubStore) MoviesByActor(ctx context.Context, name string) ([]repository.MovieRow, error) {
	if name != "Leonardo DiCaprio" {
		return nil, nil
	}
	return []repository.MovieRow{
		{Title: "Inception", Year: 2010, Rating: 8.8},
		{Title: "Titanic", Year: 1997, Rating: 7.9},
	}, nil
}

func (s *stubStore) Statistics(ctx context.Context) (*repository.Stats, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return &repository.Stats{Movies: 10, People: 10, Genres: 5, Relationships: 38}, nil
}

func (s *stubStore) Verify(ctx context.Context) error { return s.verifyErr }

func (s *stubStore) Close(ctx context.Context) error { return nil }

func newTestServer(store repository.GraphStore) *httptest.Server {
	rec := recommend.NewRecommender(store, recommend.DefaultWeights(), 5)
	s := NewServer(store, rec, 5*time.Second)
	return httptest.NewServer(s.RegisterRoutes())
}

func postRecommendations(t *testing.T, ts *httptest.Server, req RecommendationRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	resp, err := http.Post(ts.URL+"/api/v1/recommendations", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	return resp
}

func TestHandleRecommendations_Combined(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp := postRecommendations(t, ts, RecommendationRequest{Title: "Inception", Strategy: "combined"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var got RecommendationResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(got.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(got.Results))
	}
	if got.Results[0].Title != "Titanic" || got.Results[0].Score != 3 {
		t.Errorf("Expected Titanic first with score 3, got %+v", got.Results[0])
	}
	if got.Results[1].Title != "Interstellar" || got.Results[1].Score != 2 {
		t.Errorf("Expected Interstellar second with score 2, got %+v", got.Results[1])
	}
	if got.Limit != 5 {
		t.Errorf("Omitted limit must echo the default, got %d", got.Limit)
	}
}

func TestHandleRecommendations_StrategyDefaultsToCombined(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp := postRecommendations(t, ts, RecommendationRequest{Title: "Inception"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var got RecommendationResponse
	_ = json.NewDecoder(resp.Body).Decode(&got)
	if got.Strategy != "combined" {
		t.Errorf("Expected combined strategy, got %q", got.Strategy)
	}
}

func TestHandleRecommendations_InvalidPayload(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/v1/recommendations", "application/json", strings.NewReader("{invalid"))
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid payload, got %d", resp.StatusCode)
	}
}

func TestHandleRecommendations_MissingTitle(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp := postRecommendations(t, ts, RecommendationRequest{Title: ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty title, got %d", resp.StatusCode)
	}
}

func TestHandleRecommendations_UnknownStrategy(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp := postRecommendations(t, ts, RecommendationRequest{Title: "Inception", Strategy: "popularity"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown strategy, got %d", resp.StatusCode)
	}
}

func TestHandleRecommendations_ExplicitZeroLimit(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	zero := 0
	resp := postRecommendations(t, ts, RecommendationRequest{Title: "Inception", Limit: &zero})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Explicit zero limit must be rejected, got %d", resp.StatusCode)
	}
}

func TestHandleRecommendations_UnknownTitle(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp := postRecommendations(t, ts, RecommendationRequest{Title: "NoSuchMovie"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Unknown title must not be an error, got %d", resp.StatusCode)
	}

	var got RecommendationResponse
	_ = json.NewDecoder(resp.Body).Decode(&got)
	if len(got.Results) != 0 {
		t.Errorf("Expected empty results, got %d", len(got.Results))
	}
}

func TestHandleRecommendations_StoreUnavailable(t *testing.T) {
	ts := newTestServer(&stubStore{failWith: repository.ErrUnavailable})
	defer ts.Close()

	resp := postRecommendations(t, ts, RecommendationRequest{Title: "Inception"})
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502 for unavailable store, got %d", resp.StatusCode)
	}
}

func TestHandleRecommendations_CircuitOpen(t *testing.T) {
	// A guarded store rejects calls with both the unavailable kind and the
	// breaker sentinel in the chain; the breaker sentinel wins the mapping.
	rejection := fmt.Errorf("graph store calls suspended: %w: %w",
		repository.ErrUnavailable, resilience.ErrCircuitOpen)
	ts := newTestServer(&stubStore{failWith: rejection})
	defer ts.Close()

	resp := postRecommendations(t, ts, RecommendationRequest{Title: "Inception"})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 for open circuit, got %d", resp.StatusCode)
	}
}

func TestHandleRecommendations_StoreTimeout(t *testing.T) {
	ts := newTestServer(&stubStore{failWith: repository.ErrTimeout})
	defer ts.Close()

	resp := postRecommendations(t, ts, RecommendationRequest{Title: "Inception"})
	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Errorf("Expected 504 for timed-out store, got %d", resp.StatusCode)
	}
}

func TestHandleMovies(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/movies")
	if err != nil {
		t.Fatalf("req failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	var data struct {
		Movies []MovieResponse `json:"movies"`
		Count  int             `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if data.Count != 3 || len(data.Movies) != 3 {
		t.Errorf("Expected 3 movies, got count %d with %d entries", data.Count, len(data.Movies))
	}
}

func TestHandleMovieDetails(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/movies/Inception")
	if err != nil {
		t.Fatalf("req failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	var data MovieDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if data.Title != "Inception" {
		t.Errorf("expected Inception, got %q", data.Title)
	}
	if len(data.Directors) != 1 || data.Directors[0] != "Christopher Nolan" {
		t.Errorf("expected Nolan as director, got %v", data.Directors)
	}
}

func TestHandleMovieDetails_NotFound(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/movies/NoSuchMovie")
	if err != nil {
		t.Fatalf("req failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleFilmography(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/people/Christopher Nolan/directed")
	if err != nil {
		t.Fatalf("req failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	var data struct {
		Name   string          `json:"name"`
		Movies []MovieResponse `json:"movies"`
		Count  int             `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if data.Count != 2 {
		t.Errorf("expected 2 directed movies, got %d", data.Count)
	}

	// Unknown person answers an empty list, not an error
	resp2, err := http.Get(ts.URL + "/api/v1/people/Nobody/acted")
	if err != nil {
		t.Fatalf("req failed: %v", err)
	}
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK for unknown person, got %d", resp2.StatusCode)
	}
	var data2 struct {
		Count int `json:"count"`
	}
	_ = json.NewDecoder(resp2.Body).Decode(&data2)
	if data2.Count != 0 {
		t.Errorf("expected empty filmography, got %d", data2.Count)
	}
}

func TestHandleStats(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/stats")
	if err != nil {
		t.Fatalf("req failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.StatusCode)
	}

	var data map[string]int64
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if data["movies"] != 10 || data["genres"] != 5 {
		t.Errorf("unexpected stats payload: %v", data)
	}
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(&stubStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("req failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", resp.StatusCode)
	}
}

func TestHandleHealth_Unavailable(t *testing.T) {
	ts := newTestServer(&stubStore{verifyErr: repository.ErrUnavailable})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("req failed: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
}
