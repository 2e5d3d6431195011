package classifier

import (
	"fmt"

	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
)

// priceMarginOfSafety is the share of the current price a DCF value may
// fall to and still be medium
const priceMarginOfSafety = 0.9

func positiveValue(v float64, _ *complementary.Bag) (contracts.Score, error) {
	if v > 0 {
		return contracts.ScoreGood, nil
	}
	return contracts.ScoreBad, nil
}

func nonNegative(v float64, _ *complementary.Bag) (contracts.Score, error) {
	switch {
	case v > 0:
		return contracts.ScoreGood, nil
	case v == 0:
		return contracts.ScoreMedium, nil
	default:
		return contracts.ScoreBad, nil
	}
}

// aboveCurrentPrice compares an intrinsic value with current_price from the bag
func aboveCurrentPrice(v float64, bag *complementary.Bag) (contracts.Score, error) {
	price, ok := bag.Get(contracts.KeyCurrentPrice)
	if !ok || price <= 0 {
		return contracts.ScoreMedium, fmt.Errorf("%w: %s", ErrMissingContext, contracts.KeyCurrentPrice)
	}

	switch {
	case v >= price:
		return contracts.ScoreGood, nil
	case v >= price*priceMarginOfSafety:
		return contracts.ScoreMedium, nil
	default:
		return contracts.ScoreBad, nil
	}
}
