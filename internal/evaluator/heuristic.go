package evaluator

import (
	"strings"

	"github.com/wonny/quickrate/internal/contracts"
	"github.com/wonny/quickrate/internal/resolver"
)

// heuristicDefault gives an unmapped indicator a sector-agnostic sanity score
//   - "yield": good in [2, 15], medium in [0, 25], bad otherwise
//   - margins and returns: good ≥ 15, medium ≥ 5
//   - anything else: medium
func heuristicDefault(label string, value float64) contracts.Score {
	n := resolver.Normalize(label)

	switch {
	case strings.Contains(n, "yield"):
		switch {
		case value >= 2 && value <= 15:
			return contracts.ScoreGood
		case value >= 0 && value <= 25:
			return contracts.ScoreMedium
		default:
			return contracts.ScoreBad
		}
	case containsAny(n, "margem", "margin", "roe", "roic"):
		switch {
		case value >= 15:
			return contracts.ScoreGood
		case value >= 5:
			return contracts.ScoreMedium
		default:
			return contracts.ScoreBad
		}
	default:
		return contracts.ScoreMedium
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
