package catalog

import (
	"time"

	"github.com/cinegraph/cinegraph-api/internal/domain/repository"
)

// Entry is one movie from an external catalog feed, ready to be merged
// into the graph.
type Entry struct {
	GUID      string
	Title     string
	Year      int64
	Rating    float64
	Tagline   string
	Summary   string
	Director  string
	Genres    []string
	Cast      []string
	UpdatedAt time.Time
}

// Dataset is a full slice of catalog content: nodes plus the relationships
// joining them.
type Dataset struct {
	Genres   []repository.GenreSeed
	People   []repository.PersonSeed
	Movies   []repository.MovieSeed
	Directed []repository.Link
	ActedIn  []repository.Link
	InGenre  []repository.Link
}

// Sample returns the built-in demo catalog: five genres, ten people and
// ten movies wired together. Seeding it is idempotent since every write
// goes through MERGE.
func Sample() Dataset {
	return Dataset{
		Genres: []repository.GenreSeed{
			{Name: "Action", Description: "High-energy films with physical stunts and chase sequences"},
			{Name: "Drama", Description: "Character-driven stories with emotional depth"},
			{Name: "Comedy", Description: "Light-hearted films designed to make audiences laugh"},
			{Name: "Sci-Fi", Description: "Science fiction exploring futuristic concepts"},
			{Name: "Thriller", Description: "Suspenseful films that keep viewers on edge"},
		},
		People: []repository.PersonSeed{
			{Name: "Leonardo DiCaprio", Born: 1974, Role: "Actor"},
			{Name: "Tom Hanks", Born: 1956, Role: "Actor"},
			{Name: "Scarlett Johansson", Born: 1984, Role: "Actor"},
			{Name: "Morgan Freeman", Born: 1937, Role: "Actor"},
			{Name: "Keanu Reeves", Born: 1964, Role: "Actor"},
			{Name: "Christian Bale", Born: 1974, Role: "Actor"},
			{Name: "Matthew McConaughey", Born: 1969, Role: "Actor"},
			{Name: "Christopher Nolan", Born: 1970, Role: "Director"},
			{Name: "Quentin Tarantino", Born: 1963, Role: "Director"},
			{Name: "Steven Spielberg", Born: 1946, Role: "Director"},
		},
		Movies: []repository.MovieSeed{
			{
				Title:       "Inception",
				Year:        2010,
				Rating:      8.8,
				Tagline:     "Your mind is the scene of the crime",
				Description: "A thief who steals corporate secrets through dream-sharing technology",
			},
			{
				Title:       "The Dark Knight",
				Year:        2008,
				Rating:      9.0,
				Tagline:     "Why so serious?",
				Description: "Batman faces the Joker in a battle for Gotham's soul",
			},
			{
				Title:       "Interstellar",
				Year:        2014,
				Rating:      8.6,
				Tagline:     "Mankind was born on Earth. It was never meant to die here.",
				Description: "A team of explorers travel through a wormhole in space",
			},
			{
				Title:       "The Matrix",
				Year:        1999,
				Rating:      8.7,
				Tagline:     "Welcome to the Real World",
				Description: "A computer hacker learns about the true nature of reality",
			},
			{
				Title:       "Pulp Fiction",
				Year:        1994,
				Rating:      8.9,
				Tagline:     "You won't know the facts until you've seen the fiction",
				Description: "Various interconnected stories of Los Angeles criminals",
			},
			{
				Title:       "Forrest Gump",
				Year:        1994,
				Rating:      8.8,
				Tagline:     "Life is like a box of chocolates",
				Description: "The story of a simple man with a big heart",
			},
			{
				Title:       "The Shawshank Redemption",
				Year:        1994,
				Rating:      9.3,
				Tagline:     "Fear can hold you prisoner. Hope can set you free.",
				Description: "Two imprisoned men bond over years, finding redemption",
			},
			{
				Title:       "Saving Private Ryan",
				Year:        1998,
				Rating:      8.6,
				Tagline:     "The mission is a man.",
				Description: "A group of soldiers search for a paratrooper during WWII",
			},
			{
				Title:       "The Prestige",
				Year:        2006,
				Rating:      8.5,
				Tagline:     "Are you watching closely?",
				Description: "Two magicians engage in a bitter rivalry",
			},
			{
				Title:       "Memento",
				Year:        2000,
				Rating:      8.4,
				Tagline:     "Some memories are best forgotten",
				Description: "A man with short-term memory loss attempts to track down his wife's murderer",
			},
		},
		Directed: []repository.Link{
			{From: "Christopher Nolan", To: "Inception"},
			{From: "Christopher Nolan", To: "The Dark Knight"},
			{From: "Christopher Nolan", To: "Interstellar"},
			{From: "Christopher Nolan", To: "The Prestige"},
			{From: "Christopher Nolan", To: "Memento"},
			{From: "Quentin Tarantino", To: "Pulp Fiction"},
			{From: "Steven Spielberg", To: "Forrest Gump"},
			{From: "Steven Spielberg", To: "Saving Private Ryan"},
		},
		ActedIn: []repository.Link{
			{From: "Leonardo DiCaprio", To: "Inception"},
			{From: "Leonardo DiCaprio", To: "The Prestige"},
			{From: "Tom Hanks", To: "Forrest Gump"},
			{From: "Tom Hanks", To: "Saving Private Ryan"},
			{From: "Scarlett Johansson", To: "The Prestige"},
			{From: "Morgan Freeman", To: "The Shawshank Redemption"},
			{From: "Keanu Reeves", To: "The Matrix"},
			{From: "Christian Bale", To: "The Dark Knight"},
			{From: "Christian Bale", To: "The Prestige"},
			{From: "Matthew McConaughey", To: "Interstellar"},
		},
		InGenre: []repository.Link{
			{From: "Inception", To: "Sci-Fi"},
			{From: "Inception", To: "Action"},
			{From: "Inception", To: "Thriller"},
			{From: "The Dark Knight", To: "Action"},
			{From: "The Dark Knight", To: "Drama"},
			{From: "Interstellar", To: "Sci-Fi"},
			{From: "Interstellar", To: "Drama"},
			{From: "The Matrix", To: "Sci-Fi"},
			{From: "The Matrix", To: "Action"},
			{From: "Pulp Fiction", To: "Drama"},
			{From: "Pulp Fiction", To: "Thriller"},
			{From: "Forrest Gump", To: "Drama"},
			{From: "Forrest Gump", To: "Comedy"},
			{From: "The Shawshank Redemption", To: "Drama"},
			{From: "Saving Private Ryan", To: "Drama"},
			{From: "Saving Private Ryan", To: "Action"},
			{From: "The Prestige", To: "Drama"},
			{From: "The Prestige", To: "Thriller"},
			{From: "Memento", To: "Thriller"},
			{From: "Memento", To: "Drama"},
		},
	}
}
