package recommend

import "sort"

// Weights are the combined-strategy score multipliers. They are policy
// parameters, injected from configuration.
type Weights struct {
	Genre int
	Cast  int
}

// DefaultWeights returns the stock policy: genres count double, shared
// actors triple.
func DefaultWeights() Weights {
	return Weights{Genre: 2, Cast: 3}
}

// Recommendation is a scored candidate returned to callers, ordered
// best-first.
type Recommendation struct {
	Title        string  `json:"title"`
	Year         int64   `json:"year"`
	Rating       float64 `json:"rating"`
	SharedGenres int     `json:"shared_genres"`
	SharedActors int     `json:"shared_actors"`
	Score        int     `json:"score"`
}

// Ranker turns merged signals into a deterministic, truncated ranking.
type Ranker struct {
	weights Weights
}

func NewRanker(w Weights) *Ranker {
	if w.Genre <= 0 && w.Cast <= 0 {
		w = DefaultWeights()
	}
	return &Ranker{weights: w}
}

// Rank scores every signal for the given strategy, orders the result with
// a total tie-break chain and truncates to limit. The ordering is total:
// score descending, then (combined only) shared actors descending, then
// title ascending, so equal inputs always produce identical output.
func (r *Ranker) Rank(strategy Strategy, signals []Signal, limit int) []Recommendation {
	out := make([]Recommendation, 0, len(signals))
	for _, s := range signals {
		out = append(out, Recommendation{
			Title:        s.Title,
			Year:         s.Year,
			Rating:       s.Rating,
			SharedGenres: s.Genres,
			SharedActors: s.Actors,
			Score:        r.score(strategy, s),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if strategy == StrategyCombined && out[i].SharedActors != out[j].SharedActors {
			return out[i].SharedActors > out[j].SharedActors
		}
		return out[i].Title < out[j].Title
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *Ranker) score(strategy Strategy, s Signal) int {
	switch strategy {
	case StrategyGenre:
		return s.Genres
	case StrategyCast:
		return s.Actors
	default:
		return s.Genres*r.weights.Genre + s.Actors*r.weights.Cast
	}
}
