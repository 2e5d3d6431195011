// Package classifier maps a raw indicator value and a ThresholdSpec to a
// Score. Every function is pure: the only inputs are the value, the spec and
// the caller's complementary bag.
package classifier

import (
	"errors"
	"fmt"
	"math"

	"github.com/wonny/quickrate/internal/complementary"
	"github.com/wonny/quickrate/internal/contracts"
)

var (
	ErrUnknownCustom  = errors.New("unknown custom evaluator")
	ErrMissingContext = errors.New("missing complementary context")
	ErrInvalidSpec    = errors.New("invalid threshold spec")
	ErrInvalidValue   = errors.New("invalid value")
)

// BandTolerance is the fraction of a band's width accepted as medium outside it
const BandTolerance = 0.2

// CustomFunc evaluates a {custom: tag} spec
type CustomFunc func(value float64, bag *complementary.Bag) (contracts.Score, error)

// Classifier holds the custom evaluator registry.
// Register is not safe for concurrent use; register before serving.
type Classifier struct {
	custom map[contracts.CustomTag]CustomFunc
}

// New returns a classifier with the built-in custom evaluators
func New() *Classifier {
	c := &Classifier{custom: make(map[contracts.CustomTag]CustomFunc)}
	c.Register(contracts.CustomPositiveValue, positiveValue)
	c.Register(contracts.CustomNonNegative, nonNegative)
	c.Register(contracts.CustomAboveCurrentPrice, aboveCurrentPrice)
	return c
}

// Register adds or replaces a custom evaluator
func (c *Classifier) Register(tag contracts.CustomTag, fn CustomFunc) {
	c.custom[tag] = fn
}

// Has reports whether tag has an evaluator
func (c *Classifier) Has(tag contracts.CustomTag) bool {
	_, ok := c.custom[tag]
	return ok
}

// Classify scores value against spec
func (c *Classifier) Classify(value float64, spec contracts.ThresholdSpec, bag *complementary.Bag) (contracts.Score, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return contracts.ScoreMedium, ErrInvalidValue
	}

	switch {
	case spec.Shapes() != 1:
		return contracts.ScoreMedium, fmt.Errorf("%w: %d shapes set", ErrInvalidSpec, spec.Shapes())
	case spec.IsCutoffs():
		return cutoffs(value, *spec.Good, *spec.Medium, spec.Reverse), nil
	case spec.IsBand():
		return band(value, *spec.Min, *spec.Max), nil
	case spec.IsCustom():
		fn, ok := c.custom[spec.Custom]
		if !ok {
			return contracts.ScoreMedium, fmt.Errorf("%w: %q", ErrUnknownCustom, spec.Custom)
		}
		return fn(value, bag)
	default:
		return contracts.ScoreMedium, fmt.Errorf("%w: incomplete shape", ErrInvalidSpec)
	}
}

func cutoffs(v, good, medium float64, reverse bool) contracts.Score {
	if reverse {
		switch {
		case v <= good:
			return contracts.ScoreGood
		case v <= medium:
			return contracts.ScoreMedium
		default:
			return contracts.ScoreBad
		}
	}

	switch {
	case v >= good:
		return contracts.ScoreGood
	case v >= medium:
		return contracts.ScoreMedium
	default:
		return contracts.ScoreBad
	}
}

func band(v, min, max float64) contracts.Score {
	if v >= min && v <= max {
		return contracts.ScoreGood
	}
	tol := (max - min) * BandTolerance
	if v >= min-tol && v <= max+tol {
		return contracts.ScoreMedium
	}
	return contracts.ScoreBad
}
