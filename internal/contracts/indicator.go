package contracts

import "fmt"

// MetricKey is the canonical machine key of an indicator ("pe", "roe", ...)
type MetricKey string

// IndicatorID names one catalog indicator by (sector, key); "Technology/pe"
type IndicatorID struct {
	Sector Sector    `json:"sector"`
	Key    MetricKey `json:"key"`
}

func (id IndicatorID) String() string {
	return fmt.Sprintf("%s/%s", id.Sector, id.Key)
}

// Score is the three-level classification of an indicator
type Score string

const (
	ScoreGood   Score = "good"
	ScoreMedium Score = "medium"
	ScoreBad    Score = "bad"
)

// Rank orders scores: bad=0, medium=1, good=2
func (s Score) Rank() int {
	switch s {
	case ScoreGood:
		return 2
	case ScoreMedium:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the three scores
func (s Score) Valid() bool {
	return s == ScoreGood || s == ScoreMedium || s == ScoreBad
}

// Trend is the direction of change versus the previous period
type Trend string

const (
	TrendNone Trend = ""
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// CustomTag names a special-case evaluator for a ThresholdSpec
type CustomTag string

const (
	CustomPositiveValue     CustomTag = "positiveValue"
	CustomNonNegative       CustomTag = "nonNegative"
	CustomAboveCurrentPrice CustomTag = "aboveCurrentPrice"
)

// ThresholdSpec describes how a raw value maps to a Score.
// Exactly one shape is set: cutoffs (Good/Medium/Reverse), band (Min/Max)
// or Custom.
type ThresholdSpec struct {
	Good    *float64  `yaml:"good,omitempty" json:"good,omitempty"`
	Medium  *float64  `yaml:"medium,omitempty" json:"medium,omitempty"`
	Reverse bool      `yaml:"reverse,omitempty" json:"reverse,omitempty"`
	Min     *float64  `yaml:"min,omitempty" json:"min,omitempty"`
	Max     *float64  `yaml:"max,omitempty" json:"max,omitempty"`
	Custom  CustomTag `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// Cutoffs builds a higher-is-better spec
func Cutoffs(good, medium float64) ThresholdSpec {
	return ThresholdSpec{Good: &good, Medium: &medium}
}

// ReverseCutoffs builds a lower-is-better spec
func ReverseCutoffs(good, medium float64) ThresholdSpec {
	return ThresholdSpec{Good: &good, Medium: &medium, Reverse: true}
}

// Band builds an acceptable-range spec
func Band(min, max float64) ThresholdSpec {
	return ThresholdSpec{Min: &min, Max: &max}
}

// Custom builds a spec delegating to a named evaluator
func Custom(tag CustomTag) ThresholdSpec {
	return ThresholdSpec{Custom: tag}
}

// IsCutoffs reports a {good, medium, reverse?} spec
func (t ThresholdSpec) IsCutoffs() bool {
	return t.Good != nil && t.Medium != nil
}

// IsBand reports a {min, max} spec
func (t ThresholdSpec) IsBand() bool {
	return t.Min != nil && t.Max != nil
}

// IsCustom reports a {custom: tag} spec
func (t ThresholdSpec) IsCustom() bool {
	return t.Custom != ""
}

// Shapes counts how many spec shapes are (partially) populated
func (t ThresholdSpec) Shapes() int {
	n := 0
	if t.Good != nil || t.Medium != nil {
		n++
	}
	if t.Min != nil || t.Max != nil {
		n++
	}
	if t.Custom != "" {
		n++
	}
	return n
}

// ExplainInput is passed to explanation generators
type ExplainInput struct {
	Value         float64
	PreviousValue *float64
	Score         Score
	Metadata      IndicatorMetadata
}

// ExplainFunc renders a tooltip for one evaluation
type ExplainFunc func(in ExplainInput) string

// Explanation is either static text or a generator
type Explanation struct {
	Text     string
	Generate ExplainFunc
}

// Render resolves the explanation for one evaluation
func (e Explanation) Render(in ExplainInput) string {
	if e.Generate != nil {
		return e.Generate(in)
	}
	return e.Text
}

// IndicatorMetadata describes one known metric in one sector
// ⭐ SSOT: 지표 메타데이터 구조는 여기서만 정의
type IndicatorMetadata struct {
	Label             string
	Key               MetricKey
	Weight            float64
	InformationalOnly bool
	DeltaSensitive    bool
	ComplementaryKeys []MetricKey
	Explanation       Explanation
}

// Evaluation is the classification result of one indicator
type Evaluation struct {
	Key               MetricKey `json:"key,omitempty"`
	Label             string    `json:"label"`
	Score             Score     `json:"score"`
	Weight            float64   `json:"weight"`
	InformationalOnly bool      `json:"informational_only"`
	Classified        bool      `json:"classified"`
	Trend             Trend     `json:"trend,omitempty"`
	Explanation       string    `json:"explanation"`
}

// KnownCustomTags lists the custom evaluators the classifier registers
func KnownCustomTags() []CustomTag {
	return []CustomTag{CustomPositiveValue, CustomNonNegative, CustomAboveCurrentPrice}
}
