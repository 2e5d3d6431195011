package classifier

import (
	"math"

	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
)

// OutlierDelta is the absolute period-over-period change treated as a
// one-off event; such readings are damped to medium
const OutlierDelta = 30.0

// ClassifyWithDelta scores value taking the previous period into account.
//   - |value - previous| > OutlierDelta → medium
//   - improving trend lifts bad to medium
//   - deteriorating trend lowers good to medium
//   - medium is never moved by the trend
func (c *Classifier) ClassifyWithDelta(value, previous float64, spec contracts.ThresholdSpec, bag *complementary.Bag) (contracts.Score, contracts.Trend, error) {
	if math.IsNaN(previous) || math.IsInf(previous, 0) {
		score, err := c.Classify(value, spec, bag)
		return score, contracts.TrendNone, err
	}

	trend := TrendOf(value, previous)
	base, err := c.Classify(value, spec, bag)
	if err != nil {
		return base, trend, err
	}

	if math.Abs(value-previous) > OutlierDelta {
		return contracts.ScoreMedium, trend, nil
	}

	switch direction(value, previous, spec) {
	case improving:
		if base == contracts.ScoreBad {
			return contracts.ScoreMedium, trend, nil
		}
	case deteriorating:
		if base == contracts.ScoreGood {
			return contracts.ScoreMedium, trend, nil
		}
	}
	return base, trend, nil
}

// TrendOf returns the raw direction of change for the trend arrow
func TrendOf(value, previous float64) contracts.Trend {
	switch {
	case value > previous:
		return contracts.TrendUp
	case value < previous:
		return contracts.TrendDown
	default:
		return contracts.TrendFlat
	}
}

type movement int

const (
	flat movement = iota
	improving
	deteriorating
)

// direction judges a change against the spec's favorable direction:
// down for reverse cutoffs, toward the centre for bands, up otherwise
func direction(value, previous float64, spec contracts.ThresholdSpec) movement {
	var gain float64
	switch {
	case spec.IsBand():
		centre := (*spec.Min + *spec.Max) / 2
		gain = math.Abs(previous-centre) - math.Abs(value-centre)
	case spec.IsCutoffs() && spec.Reverse:
		gain = previous - value
	default:
		gain = value - previous
	}

	switch {
	case gain > 0:
		return improving
	case gain < 0:
		return deteriorating
	default:
		return flat
	}
}
