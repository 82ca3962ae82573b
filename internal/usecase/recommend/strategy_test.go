package recommend

import (
	"errors"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		raw  string
		want Strategy
	}{
		{"genre", StrategyGenre},
		{"cast", StrategyCast},
		{"combined", StrategyCombined},
		{"GENRE", StrategyGenre},
		{"  combined  ", StrategyCombined},
	}

	for _, tc := range cases {
		got, err := ParseStrategy(tc.raw)
		if err != nil {
			t.Errorf("ParseStrategy(%q): unexpected error %v", tc.raw, err)
		}
		if got != tc.want {
			t.Errorf("ParseStrategy(%q): expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestParseStrategy_Unknown(t *testing.T) {
	_, err := ParseStrategy("popularity")
	if !errors.Is(err, ErrInvalidStrategy) {
		t.Errorf("Expected ErrInvalidStrategy, got %v", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Unknown strategy must carry the invalid-argument kind, got %v", err)
	}
}
