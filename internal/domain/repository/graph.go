package repository

import (
	"context"
	"errors"
)

// Sentinel kinds surfaced by graph store implementations.
// Callers distinguish them with errors.Is.
var (
	ErrNotFound    = errors.New("record not found")
	ErrUnavailable = errors.New("graph store unavailable")
	ErrTimeout     = errors.New("graph store timeout")
)

// MovieRow is a movie as listed in the catalog.
type MovieRow struct {
	Title       string
	Year        int64
	Rating      float64
	Tagline     string
	Description string
	Genres      []string
}

// MovieDetails is a movie with its full neighborhood collected.
type MovieDetails struct {
	MovieRow
	Directors []string
	Cast      []string
}

// GenreMatch is a candidate movie sharing at least one genre with the
// reference movie.
type GenreMatch struct {
	Title        string
	Year         int64
	Rating       float64
	SharedGenres int64
}

// CastMatch is a candidate movie sharing at least one actor with the
// reference movie.
type CastMatch struct {
	Title        string
	Year         int64
	Rating       float64
	SharedActors int64
}

// Stats holds node and relationship counts for the whole graph.
type Stats struct {
	Movies        int64
	People        int64
	Genres        int64
	Relationships int64
}

// GraphStore defines the read-side interface for graph database operations.
// Implementations must be safe for concurrent use and must honor context
// cancellation on every call.
type GraphStore interface {
	SimilarByGenre(ctx context.Context, title string) ([]GenreMatch, error)
	SimilarByCast(ctx context.Context, title string) ([]CastMatch, error)
	AllMovies(ctx context.Context) ([]MovieRow, error)
	MovieDetails(ctx context.Context, title string) (*MovieDetails, error)
	MoviesByDirector(ctx context.Context, name string) ([]MovieRow, error)
	MoviesByActor(ctx context.Context, name string) ([]MovieRow, error)
	Statistics(ctx context.Context) (*Stats, error)
	Verify(ctx context.Context) error
	Close(ctx context.Context) error
}

// GenreSeed, PersonSeed and MovieSeed are the write-side batch shapes.
type GenreSeed struct {
	Name        string
	Description string
}

type PersonSeed struct {
	Name string
	Born int64
	Role string
}

type MovieSeed struct {
	Title       string
	Year        int64
	Rating      float64
	Tagline     string
	Description string
}

// Link is a directed relationship between two named nodes.
type Link struct {
	From string
	To   string
}

// GraphAdmin defines the write-side interface used by seeding and import.
type GraphAdmin interface {
	EnsureSchema(ctx context.Context) error
	Clear(ctx context.Context) error
	UpsertGenres(ctx context.Context, genres []GenreSeed) (int, error)
	UpsertPeople(ctx context.Context, people []PersonSeed) (int, error)
	UpsertMovies(ctx context.Context, movies []MovieSeed) (int, error)
	LinkDirected(ctx context.Context, links []Link) error
	LinkActedIn(ctx context.Context, links []Link) error
	LinkInGenre(ctx context.Context, links []Link) error
	RelationshipCounts(ctx context.Context) (map[string]int64, error)
}
