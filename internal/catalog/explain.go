package catalog

import (
	"fmt"
	"math"

	"github.com/wonny/quickrate/internal/contracts"
)

// unit controls how values are printed in explanations
type unit int

const (
	unitPercent unit = iota
	unitMultiple
	unitRatio
	unitMonths
	unitYears
	unitCurrency
)

func formatValue(v float64, u unit) string {
	switch u {
	case unitPercent:
		return fmt.Sprintf("%.1f%%", v)
	case unitMultiple:
		return fmt.Sprintf("%.1fx", v)
	case unitMonths:
		return fmt.Sprintf("%.0f months", v)
	case unitYears:
		return fmt.Sprintf("%.1f years", v)
	case unitCurrency:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// verdicts holds the good/medium/bad phrasing of one metric
type verdicts struct {
	good   string
	medium string
	bad    string
}

func (v verdicts) pick(s contracts.Score) string {
	switch s {
	case contracts.ScoreGood:
		return v.good
	case contracts.ScoreMedium:
		return v.medium
	default:
		return v.bad
	}
}

// explain builds a generator: "<label> at <value>: <verdict> (previous: <prev>)"
func explain(u unit, v verdicts) contracts.Explanation {
	return contracts.Explanation{
		Generate: func(in contracts.ExplainInput) string {
			msg := fmt.Sprintf("%s at %s: %s", in.Metadata.Label, formatValue(in.Value, u), v.pick(in.Score))
			if in.PreviousValue != nil && !math.IsNaN(*in.PreviousValue) {
				msg += fmt.Sprintf(" (previous period %s)", formatValue(*in.PreviousValue, u))
			}
			return msg
		},
	}
}

// static wraps a fixed tooltip
func static(text string) contracts.Explanation {
	return contracts.Explanation{Text: text}
}

var (
	valuationVerdicts = verdicts{
		good:   "cheap relative to sector peers",
		medium: "in line with sector peers",
		bad:    "expensive relative to sector peers",
	}
	profitabilityVerdicts = verdicts{
		good:   "strong profitability for the sector",
		medium: "average profitability for the sector",
		bad:    "weak profitability for the sector",
	}
	growthVerdicts = verdicts{
		good:   "growing faster than the sector",
		medium: "growing in line with the sector",
		bad:    "growth below sector expectations",
	}
	leverageVerdicts = verdicts{
		good:   "conservative leverage",
		medium: "moderate leverage, monitor",
		bad:    "high leverage for the sector",
	}
	liquidityVerdicts = verdicts{
		good:   "comfortable short-term liquidity",
		medium: "adequate liquidity",
		bad:    "tight liquidity",
	}
	yieldVerdicts = verdicts{
		good:   "attractive income for the sector",
		medium: "moderate income",
		bad:    "low income for the sector",
	}
	bandVerdicts = verdicts{
		good:   "within the healthy range",
		medium: "slightly outside the healthy range",
		bad:    "far outside the healthy range",
	}
)

// ffoPayoutExplanation: FII/REIT 배당 지속가능성 설명
func ffoPayoutExplanation(in contracts.ExplainInput) string {
	switch in.Score {
	case contracts.ScoreGood:
		return fmt.Sprintf("FFO payout of %.1f%% leaves room to sustain distributions", in.Value)
	case contracts.ScoreMedium:
		return fmt.Sprintf("FFO payout of %.1f%% is close to the sustainable limit", in.Value)
	default:
		return fmt.Sprintf("FFO payout of %.1f%% distributes more than recurring cash generation supports", in.Value)
	}
}

func dcfExplanation(in contracts.ExplainInput) string {
	switch in.Score {
	case contracts.ScoreGood:
		return fmt.Sprintf("Intrinsic value of %.2f is above the current price", in.Value)
	case contracts.ScoreMedium:
		return fmt.Sprintf("Intrinsic value of %.2f is close to the current price", in.Value)
	default:
		return fmt.Sprintf("Intrinsic value of %.2f is well below the current price", in.Value)
	}
}

func ruleOf40Explanation(in contracts.ExplainInput) string {
	if in.Value >= 40 {
		return fmt.Sprintf("Growth plus margin of %.1f meets the Rule of 40", in.Value)
	}
	return fmt.Sprintf("Growth plus margin of %.1f falls short of the Rule of 40", in.Value)
}
