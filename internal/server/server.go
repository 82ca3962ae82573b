package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/cinegraph/cinegraph-api/internal/domain/repository"
	"github.com/cinegraph/cinegraph-api/internal/resilience"
	"github.com/cinegraph/cinegraph-api/internal/usecase/recommend"
)

// Server holds the dependencies for the HTTP API server
type Server struct {
	store          repository.GraphStore
	recommender    *recommend.Recommender
	requestTimeout time.Duration
}

// NewServer initializes a new API server with the required dependencies
func NewServer(store repository.GraphStore, rec *recommend.Recommender, requestTimeout time.Duration) *Server {
	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}
	return &Server{
		store:          store,
		recommender:    rec,
		requestTimeout: requestTimeout,
	}
}

// RegisterRoutes registers all API endpoints with a new ServeMux
func (s *Server) RegisterRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Go 1.22+ supports HTTP method routing directly in ServeMux
	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /api/v1/movies", s.handleMovies)
	mux.HandleFunc("GET /api/v1/movies/{title}", s.handleMovieDetails)
	mux.HandleFunc("GET /api/v1/people/{name}/directed", s.handleDirected)
	mux.HandleFunc("GET /api/v1/people/{name}/acted", s.handleActed)
	mux.HandleFunc("GET /api/v1/stats", s.handleStats)

	return mux
}

// RecommendationRequest selects a reference movie and an optional strategy
// and limit. Limit is a pointer so an explicit zero is distinguishable from
// an omitted field: omitted falls back to the configured default, zero is
// rejected.
type RecommendationRequest struct {
	Title    string `json:"title"`
	Strategy string `json:"strategy,omitempty"`
	Limit    *int   `json:"limit,omitempty"`
}

type RecommendationResponse struct {
	Title    string                     `json:"title"`
	Strategy string                     `json:"strategy"`
	Limit    int                        `json:"limit"`
	Results  []recommend.Recommendation `json:"results"`
}

// MovieResponse is the wire shape for a catalog movie.
type MovieResponse struct {
	Title       string   `json:"title"`
	Year        int64    `json:"year"`
	Rating      float64  `json:"rating"`
	Tagline     string   `json:"tagline,omitempty"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres"`
}

type MovieDetailsResponse struct {
	MovieResponse
	Directors []string `json:"directors"`
	Cast      []string `json:"cast"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := s.store.Verify(ctx); err != nil {
		log.Printf("[Server] Health check failed: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		http.Error(w, "Title field is required", http.StatusBadRequest)
		return
	}

	strategy := recommend.StrategyCombined
	if req.Strategy != "" {
		parsed, err := recommend.ParseStrategy(req.Strategy)
		if err != nil {
			s.writeError(w, err)
			return
		}
		strategy = parsed
	}

	limit := s.recommender.DefaultLimit()
	if req.Limit != nil {
		limit = *req.Limit
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	results, err := s.recommender.Recommend(ctx, req.Title, strategy, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(RecommendationResponse{
		Title:    req.Title,
		Strategy: string(strategy),
		Limit:    limit,
		Results:  results,
	})
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	movies, err := s.store.AllMovies(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"movies": movieResponses(movies),
		"count":  len(movies),
	})
}

func (s *Server) handleMovieDetails(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	if title == "" {
		http.Error(w, "Movie title required", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	details, err := s.store.MovieDetails(ctx, title)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MovieDetailsResponse{
		MovieResponse: movieResponse(details.MovieRow),
		Directors:     emptyIfNil(details.Directors),
		Cast:          emptyIfNil(details.Cast),
	})
}

func (s *Server) handleDirected(w http.ResponseWriter, r *http.Request) {
	s.handleFilmography(w, r, s.store.MoviesByDirector)
}

func (s *Server) handleActed(w http.ResponseWriter, r *http.Request) {
	s.handleFilmography(w, r, s.store.MoviesByActor)
}

// handleFilmography serves both person listing endpoints. An unknown person
// yields an empty list, not an error.
func (s *Server) handleFilmography(w http.ResponseWriter, r *http.Request, query func(context.Context, string) ([]repository.MovieRow, error)) {
	name := r.PathValue("name")
	if name == "" {
		http.Error(w, "Person name required", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	movies, err := query(ctx, name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"name":   name,
		"movies": movieResponses(movies),
		"count":  len(movies),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	stats, err := s.store.Statistics(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{
		"movies":        stats.Movies,
		"people":        stats.People,
		"genres":        stats.Genres,
		"relationships": stats.Relationships,
	})
}

// requestContext caps every store-touching request at the configured timeout.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.requestTimeout)
}

// writeError maps domain error kinds onto HTTP status codes. Validation and
// not-found details are safe to show the caller; store faults are logged
// and answered generically.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrTimeout):
		log.Printf("[Server] Graph query timed out: %v", err)
		http.Error(w, "Graph query timed out", http.StatusGatewayTimeout)
	case errors.Is(err, resilience.ErrCircuitOpen):
		log.Printf("[Server] Rejected by circuit breaker: %v", err)
		http.Error(w, "Graph store temporarily suspended", http.StatusServiceUnavailable)
	case errors.Is(err, repository.ErrUnavailable):
		log.Printf("[Server] Graph store unavailable: %v", err)
		http.Error(w, "Graph store unavailable", http.StatusBadGateway)
	default:
		log.Printf("[Server] Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func movieResponse(row repository.MovieRow) MovieResponse {
	return MovieResponse{
		Title:       row.Title,
		Year:        row.Year,
		Rating:      row.Rating,
		Tagline:     row.Tagline,
		Description: row.Description,
		Genres:      emptyIfNil(row.Genres),
	}
}

func movieResponses(rows []repository.MovieRow) []MovieResponse {
	out := make([]MovieResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, movieResponse(row))
	}
	return out
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
