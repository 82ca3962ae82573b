package neo4j

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"

	"github.com/cinegraph/cinegraph-api/internal/domain/repository"
)

// Client implements the repository.GraphStore and repository.GraphAdmin
// interfaces using the official Neo4j Go driver.
type Client struct {
	driver neo4j.Driver
}

var (
	_ repository.GraphStore = (*Client)(nil)
	_ repository.GraphAdmin = (*Client)(nil)
)

// NewClient creates a new Neo4j client and verifies connectivity.
func NewClient(ctx context.Context, uri, user, password string) (*Client, error) {
	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver for %s: %w: %w", uri, repository.ErrUnavailable, err)
	}

	// Verify connectivity
	if err := driver.VerifyConnectivity(ctx); err != nil {
		if closeErr := driver.Close(ctx); closeErr != nil {
			log.Printf("[Neo4j] Warning: failed to close driver after connectivity check: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to verify Neo4j connectivity at %s: %w: %w", uri, repository.ErrUnavailable, err)
	}

	log.Printf("[Neo4j] Connected to %s as %s", uri, user)
	return &Client{driver: driver}, nil
}

// classify folds driver failures into the sentinel kinds callers test with
// errors.Is. The driver error stays in the chain.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w: %w", op, repository.ErrTimeout, err)
	case neo4j.IsConnectivityError(err):
		return fmt.Errorf("%s: %w: %w", op, repository.ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (c *Client) run(ctx context.Context, op, cypher string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, c.driver, cypher, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(""),
	)
	if err != nil {
		return nil, classify(op, err)
	}
	return result, nil
}

// Verify performs a round trip through the store.
func (c *Client) Verify(ctx context.Context) error {
	result, err := c.run(ctx, "neo4j connectivity check failed", `RETURN 1 AS test`, nil)
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return fmt.Errorf("neo4j connectivity check returned no rows: %w", repository.ErrUnavailable)
	}
	return nil
}

// SimilarByGenre returns every other movie sharing at least one genre with
// the reference movie, with the distinct shared-genre count. An unknown
// title matches nothing and yields an empty result.
func (c *Client) SimilarByGenre(ctx context.Context, title string) ([]repository.GenreMatch, error) {
	cypher := `
		MATCH (selected:Movie {title: $title})
		MATCH (selected)-[:IN_GENRE]->(g:Genre)
		MATCH (other:Movie)-[:IN_GENRE]->(g)
		WHERE other <> selected
		WITH other, COUNT(DISTINCT g) AS shared_genres
		RETURN other.title AS title,
		       other.year AS year,
		       other.rating AS rating,
		       shared_genres
	`

	result, err := c.run(ctx, "neo4j genre similarity query failed", cypher, map[string]any{"title": title})
	if err != nil {
		return nil, err
	}

	var out []repository.GenreMatch
	for _, record := range result.Records {
		name, _, _ := neo4j.GetRecordValue[string](record, "title")
		year, _, _ := neo4j.GetRecordValue[int64](record, "year")
		rating, _, _ := neo4j.GetRecordValue[float64](record, "rating")
		shared, _, _ := neo4j.GetRecordValue[int64](record, "shared_genres")

		out = append(out, repository.GenreMatch{
			Title:        name,
			Year:         year,
			Rating:       rating,
			SharedGenres: shared,
		})
	}
	return out, nil
}

// SimilarByCast returns every other movie sharing at least one actor with
// the reference movie, with the distinct shared-actor count.
func (c *Client) SimilarByCast(ctx context.Context, title string) ([]repository.CastMatch, error) {
	cypher := `
		MATCH (selected:Movie {title: $title})
		MATCH (actor:Person)-[:ACTED_IN]->(selected)
		MATCH (actor)-[:ACTED_IN]->(other:Movie)
		WHERE other <> selected
		WITH other, COUNT(DISTINCT actor) AS shared_actors
		RETURN other.title AS title,
		       other.year AS year,
		       other.rating AS rating,
		       shared_actors
	`

	result, err := c.run(ctx, "neo4j cast similarity query failed", cypher, map[string]any{"title": title})
	if err != nil {
		return nil, err
	}

	var out []repository.CastMatch
	for _, record := range result.Records {
		name, _, _ := neo4j.GetRecordValue[string](record, "title")
		year, _, _ := neo4j.GetRecordValue[int64](record, "year")
		rating, _, _ := neo4j.GetRecordValue[float64](record, "rating")
		shared, _, _ := neo4j.GetRecordValue[int64](record, "shared_actors")

		out = append(out, repository.CastMatch{
			Title:        name,
			Year:         year,
			Rating:       rating,
			SharedActors: shared,
		})
	}
	return out, nil
}

// AllMovies lists the whole catalog ordered by title.
func (c *Client) AllMovies(ctx context.Context) ([]repository.MovieRow, error) {
	cypher := `
		MATCH (m:Movie)
		OPTIONAL MATCH (m)-[:IN_GENRE]->(genre:Genre)
		WITH m, COLLECT(DISTINCT genre.name) AS genres
		RETURN m.title AS title,
		       m.year AS year,
		       m.rating AS rating,
		       m.tagline AS tagline,
		       m.description AS description,
		       genres
		ORDER BY m.title
	`

	result, err := c.run(ctx, "neo4j movie listing failed", cypher, nil)
	if err != nil {
		return nil, err
	}

	out := make([]repository.MovieRow, 0, len(result.Records))
	for _, record := range result.Records {
		out = append(out, movieRowFromRecord(record))
	}
	return out, nil
}

// MovieDetails returns a movie with directors, cast and genres collected.
// Returns repository.ErrNotFound when the title is absent.
func (c *Client) MovieDetails(ctx context.Context, title string) (*repository.MovieDetails, error) {
	cypher := `
		MATCH (m:Movie {title: $title})
		OPTIONAL MATCH (director:Person)-[:DIRECTED]->(m)
		OPTIONAL MATCH (actor:Person)-[:ACTED_IN]->(m)
		OPTIONAL MATCH (m)-[:IN_GENRE]->(genre:Genre)
		RETURN m.title AS title,
		       m.year AS year,
		       m.rating AS rating,
		       m.tagline AS tagline,
		       m.description AS description,
		       COLLECT(DISTINCT director.name) AS directors,
		       COLLECT(DISTINCT actor.name) AS cast,
		       COLLECT(DISTINCT genre.name) AS genres
	`

	result, err := c.run(ctx, "neo4j movie details query failed", cypher, map[string]any{"title": title})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("movie %q: %w", title, repository.ErrNotFound)
	}

	record := result.Records[0]
	details := &repository.MovieDetails{
		MovieRow:  movieRowFromRecord(record),
		Directors: stringListFromRecord(record, "directors"),
		Cast:      stringListFromRecord(record, "cast"),
	}
	return details, nil
}

// MoviesByDirector lists a director's movies, newest first.
func (c *Client) MoviesByDirector(ctx context.Context, name string) ([]repository.MovieRow, error) {
	cypher := `
		MATCH (director:Person {name: $name})-[:DIRECTED]->(m:Movie)
		OPTIONAL MATCH (m)-[:IN_GENRE]->(genre:Genre)
		WITH m, COLLECT(DISTINCT genre.name) AS genres
		RETURN m.title AS title,
		       m.year AS year,
		       m.rating AS rating,
		       m.tagline AS tagline,
		       m.description AS description,
		       genres
		ORDER BY m.year DESC
	`
	return c.movieRows(ctx, "neo4j director filmography query failed", cypher, map[string]any{"name": name})
}

// MoviesByActor lists an actor's movies, newest first.
func (c *Client) MoviesByActor(ctx context.Context, name string) ([]repository.MovieRow, error) {
	cypher := `
		MATCH (actor:Person {name: $name})-[:ACTED_IN]->(m:Movie)
		OPTIONAL MATCH (m)-[:IN_GENRE]->(genre:Genre)
		WITH m, COLLECT(DISTINCT genre.name) AS genres
		RETURN m.title AS title,
		       m.year AS year,
		       m.rating AS rating,
		       m.tagline AS tagline,
		       m.description AS description,
		       genres
		ORDER BY m.year DESC
	`
	return c.movieRows(ctx, "neo4j actor filmography query failed", cypher, map[string]any{"name": name})
}

func (c *Client) movieRows(ctx context.Context, op, cypher string, params map[string]any) ([]repository.MovieRow, error) {
	result, err := c.run(ctx, op, cypher, params)
	if err != nil {
		return nil, err
	}

	out := make([]repository.MovieRow, 0, len(result.Records))
	for _, record := range result.Records {
		out = append(out, movieRowFromRecord(record))
	}
	return out, nil
}

// Statistics counts nodes per label and relationships overall.
func (c *Client) Statistics(ctx context.Context) (*repository.Stats, error) {
	stats := &repository.Stats{}

	counts := []struct {
		cypher string
		dest   *int64
	}{
		{`MATCH (m:Movie) RETURN count(m) AS count`, &stats.Movies},
		{`MATCH (p:Person) RETURN count(p) AS count`, &stats.People},
		{`MATCH (g:Genre) RETURN count(g) AS count`, &stats.Genres},
		{`MATCH ()-[r]->() RETURN count(r) AS count`, &stats.Relationships},
	}

	for _, q := range counts {
		n, err := c.count(ctx, q.cypher, nil)
		if err != nil {
			return nil, err
		}
		*q.dest = n
	}
	return stats, nil
}

func (c *Client) count(ctx context.Context, cypher string, params map[string]any) (int64, error) {
	result, err := c.run(ctx, "neo4j count query failed", cypher, params)
	if err != nil {
		return 0, err
	}
	if len(result.Records) == 0 {
		return 0, nil
	}
	n, _, err := neo4j.GetRecordValue[int64](result.Records[0], "count")
	if err != nil {
		return 0, fmt.Errorf("neo4j count parse failed: %w", err)
	}
	return n, nil
}

// EnsureSchema creates the uniqueness constraints and lookup indexes.
// Every statement is IF NOT EXISTS, so repeated runs are no-ops.
func (c *Client) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE CONSTRAINT movie_title_unique IF NOT EXISTS FOR (m:Movie) REQUIRE m.title IS UNIQUE`,
		`CREATE CONSTRAINT person_name_unique IF NOT EXISTS FOR (p:Person) REQUIRE p.name IS UNIQUE`,
		`CREATE CONSTRAINT genre_name_unique IF NOT EXISTS FOR (g:Genre) REQUIRE g.name IS UNIQUE`,
		`CREATE INDEX movie_title_index IF NOT EXISTS FOR (m:Movie) ON (m.title)`,
		`CREATE INDEX person_name_index IF NOT EXISTS FOR (p:Person) ON (p.name)`,
		`CREATE INDEX genre_name_index IF NOT EXISTS FOR (g:Genre) ON (g.name)`,
	}

	for _, stmt := range statements {
		if _, err := c.run(ctx, "neo4j schema statement failed", stmt, nil); err != nil {
			return err
		}
	}

	log.Printf("[Neo4j] Schema constraints and indexes ensured")
	return nil
}

// Clear removes every node and relationship.
func (c *Client) Clear(ctx context.Context) error {
	if _, err := c.run(ctx, "neo4j clear failed", `MATCH (n) DETACH DELETE n`, nil); err != nil {
		return err
	}
	log.Printf("[Neo4j] Cleared all nodes and relationships")
	return nil
}

// UpsertGenres merges Genre nodes by name.
func (c *Client) UpsertGenres(ctx context.Context, genres []repository.GenreSeed) (int, error) {
	if len(genres) == 0 {
		return 0, nil
	}

	params := make([]map[string]any, 0, len(genres))
	for _, g := range genres {
		params = append(params, map[string]any{"name": g.Name, "description": g.Description})
	}

	// Empty descriptions never overwrite an existing one, so feed entries
	// carrying only genre names can pass through safely.
	cypher := `
		UNWIND $genres AS genre
		MERGE (g:Genre {name: genre.name})
		SET g.description = CASE WHEN genre.description <> '' THEN genre.description ELSE g.description END
		RETURN g.name AS name
	`
	result, err := c.run(ctx, "neo4j genre upsert failed", cypher, map[string]any{"genres": params})
	if err != nil {
		return 0, err
	}
	return len(result.Records), nil
}

// UpsertPeople merges Person nodes by name.
func (c *Client) UpsertPeople(ctx context.Context, people []repository.PersonSeed) (int, error) {
	if len(people) == 0 {
		return 0, nil
	}

	params := make([]map[string]any, 0, len(people))
	for _, p := range people {
		params = append(params, map[string]any{"name": p.Name, "born": p.Born, "role": p.Role})
	}

	// A zero birth year means the caller does not know it.
	cypher := `
		UNWIND $people AS person
		MERGE (p:Person {name: person.name})
		SET p.born = CASE WHEN person.born > 0 THEN person.born ELSE p.born END,
		    p.role = person.role
		RETURN p.name AS name
	`
	result, err := c.run(ctx, "neo4j person upsert failed", cypher, map[string]any{"people": params})
	if err != nil {
		return 0, err
	}
	return len(result.Records), nil
}

// UpsertMovies merges Movie nodes by title.
func (c *Client) UpsertMovies(ctx context.Context, movies []repository.MovieSeed) (int, error) {
	if len(movies) == 0 {
		return 0, nil
	}

	params := make([]map[string]any, 0, len(movies))
	for _, m := range movies {
		params = append(params, map[string]any{
			"title":       m.Title,
			"year":        m.Year,
			"rating":      m.Rating,
			"tagline":     m.Tagline,
			"description": m.Description,
		})
	}

	cypher := `
		UNWIND $movies AS movie
		MERGE (m:Movie {title: movie.title})
		SET m.year = movie.year,
		    m.rating = movie.rating,
		    m.tagline = CASE WHEN movie.tagline <> '' THEN movie.tagline ELSE m.tagline END,
		    m.description = CASE WHEN movie.description <> '' THEN movie.description ELSE m.description END
		RETURN m.title AS title
	`
	result, err := c.run(ctx, "neo4j movie upsert failed", cypher, map[string]any{"movies": params})
	if err != nil {
		return 0, err
	}
	return len(result.Records), nil
}

// LinkDirected merges DIRECTED relationships from person name to movie title.
func (c *Client) LinkDirected(ctx context.Context, links []repository.Link) error {
	cypher := `
		UNWIND $links AS link
		MATCH (p:Person {name: link.from})
		MATCH (m:Movie {title: link.to})
		MERGE (p)-[:DIRECTED]->(m)
	`
	return c.link(ctx, "neo4j DIRECTED link failed", cypher, links)
}

// LinkActedIn merges ACTED_IN relationships from person name to movie title.
func (c *Client) LinkActedIn(ctx context.Context, links []repository.Link) error {
	cypher := `
		UNWIND $links AS link
		MATCH (p:Person {name: link.from})
		MATCH (m:Movie {title: link.to})
		MERGE (p)-[:ACTED_IN]->(m)
	`
	return c.link(ctx, "neo4j ACTED_IN link failed", cypher, links)
}

// LinkInGenre merges IN_GENRE relationships from movie title to genre name.
func (c *Client) LinkInGenre(ctx context.Context, links []repository.Link) error {
	cypher := `
		UNWIND $links AS link
		MATCH (m:Movie {title: link.from})
		MATCH (g:Genre {name: link.to})
		MERGE (m)-[:IN_GENRE]->(g)
	`
	return c.link(ctx, "neo4j IN_GENRE link failed", cypher, links)
}

func (c *Client) link(ctx context.Context, op, cypher string, links []repository.Link) error {
	if len(links) == 0 {
		return nil
	}

	params := make([]map[string]any, 0, len(links))
	for _, l := range links {
		params = append(params, map[string]any{"from": l.From, "to": l.To})
	}

	_, err := c.run(ctx, op, cypher, map[string]any{"links": params})
	return err
}

// RelationshipCounts returns per-type relationship counts for seed verification.
func (c *Client) RelationshipCounts(ctx context.Context) (map[string]int64, error) {
	types := []string{"DIRECTED", "ACTED_IN", "IN_GENRE"}

	out := make(map[string]int64, len(types))
	for _, relType := range types {
		cypher := fmt.Sprintf(`MATCH ()-[r:%s]->() RETURN count(r) AS count`, relType)
		n, err := c.count(ctx, cypher, nil)
		if err != nil {
			return nil, err
		}
		out[relType] = n
	}
	return out, nil
}

// Close closes the underlying Neo4j driver.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func movieRowFromRecord(record *neo4j.Record) repository.MovieRow {
	title, _, _ := neo4j.GetRecordValue[string](record, "title")
	year, _, _ := neo4j.GetRecordValue[int64](record, "year")
	rating, _, _ := neo4j.GetRecordValue[float64](record, "rating")
	tagline, _, _ := neo4j.GetRecordValue[string](record, "tagline")
	description, _, _ := neo4j.GetRecordValue[string](record, "description")

	return repository.MovieRow{
		Title:       title,
		Year:        year,
		Rating:      rating,
		Tagline:     tagline,
		Description: description,
		Genres:      stringListFromRecord(record, "genres"),
	}
}

func stringListFromRecord(record *neo4j.Record, key string) []string {
	raw, _, err := neo4j.GetRecordValue[[]any](record, key)
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
