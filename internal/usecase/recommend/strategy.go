package recommend

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects which similarity signals drive a recommendation.
type Strategy string

const (
	StrategyGenre    Strategy = "genre"    // shared genres only
	StrategyCast     Strategy = "cast"     // shared actors only
	StrategyCombined Strategy = "combined" // weighted blend of both
)

// Validation failures. Both specific sentinels wrap ErrInvalidArgument so
// callers can match either the kind or the exact cause.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidLimit    = fmt.Errorf("%w: limit must be positive", ErrInvalidArgument)
	ErrInvalidStrategy = fmt.Errorf("%w: unknown strategy", ErrInvalidArgument)
)

// ParseStrategy normalizes and validates a strategy name.
func ParseStrategy(raw string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(raw))); s {
	case StrategyGenre, StrategyCast, StrategyCombined:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, raw)
	}
}
