package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/wonny/quickrate/internal/contracts"
)

// ValidationError 검증 실패 (카탈로그 로드 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints of a catalog
func Validate(cat *Catalog) error {
	for sector, table := range cat.thresholds {
		if !sector.Valid() {
			return ValidationError{"thresholds", fmt.Sprintf("unknown sector %q", sector)}
		}
		for _, key := range sortedKeys(table) {
			field := fmt.Sprintf("thresholds.%s.%s", sector, key)
			if err := ValidateSpec(field, table[key]); err != nil {
				return err
			}
		}
	}

	for sector, list := range cat.metadata {
		if !sector.Valid() {
			return ValidationError{"metadata", fmt.Sprintf("unknown sector %q", sector)}
		}
		for i, md := range list {
			field := fmt.Sprintf("metadata.%s[%d]", sector, i)
			if md.Label == "" {
				return ValidationError{field, "label is required"}
			}
			if md.Key == "" {
				return ValidationError{field, "key is required"}
			}
			if !finite(md.Weight) || md.Weight < 0 {
				return ValidationError{field, fmt.Sprintf("weight must be >= 0, got %.2f", md.Weight)}
			}
		}
	}

	return nil
}

// ValidateSpec checks that a ThresholdSpec has exactly one consistent shape
func ValidateSpec(field string, spec contracts.ThresholdSpec) error {
	if spec.Shapes() != 1 {
		return ValidationError{field, "exactly one of {good, medium}, {min, max} or custom must be set"}
	}

	for _, bound := range []*float64{spec.Good, spec.Medium, spec.Min, spec.Max} {
		if bound != nil && !finite(*bound) {
			return ValidationError{field, fmt.Sprintf("bounds must be finite, got %v", *bound)}
		}
	}

	switch {
	case spec.Good != nil || spec.Medium != nil:
		if !spec.IsCutoffs() {
			return ValidationError{field, "good and medium must both be set"}
		}
		if spec.Reverse && *spec.Good > *spec.Medium {
			return ValidationError{field, fmt.Sprintf("reverse spec needs good <= medium, got %.2f > %.2f", *spec.Good, *spec.Medium)}
		}
		if !spec.Reverse && *spec.Good < *spec.Medium {
			return ValidationError{field, fmt.Sprintf("spec needs good >= medium, got %.2f < %.2f", *spec.Good, *spec.Medium)}
		}
	case spec.Min != nil || spec.Max != nil:
		if !spec.IsBand() {
			return ValidationError{field, "min and max must both be set"}
		}
		if *spec.Min >= *spec.Max {
			return ValidationError{field, fmt.Sprintf("min must be < max, got %.2f >= %.2f", *spec.Min, *spec.Max)}
		}
	default:
		if !knownCustom(spec.Custom) {
			return ValidationError{field, fmt.Sprintf("unknown custom evaluator %q", spec.Custom)}
		}
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Warn checks recommended constraints (non-fatal)
func Warn(cat *Catalog) []Warning {
	var warnings []Warning

	for _, sector := range cat.Sectors() {
		for _, md := range cat.metadata[sector] {
			if _, ok := cat.Threshold(sector, md.Key); !ok && !md.InformationalOnly {
				warnings = append(warnings, Warning{
					Code:    "NO_THRESHOLD",
					Message: fmt.Sprintf("%s/%s is scored but has no threshold", sector, md.Key),
				})
			}
			for _, ck := range md.ComplementaryKeys {
				if ck == md.Key {
					warnings = append(warnings, Warning{
						Code:    "SELF_REFERENCE",
						Message: fmt.Sprintf("%s/%s lists itself as complementary", sector, md.Key),
					})
				}
			}
			if md.Weight == 0 && !md.InformationalOnly {
				warnings = append(warnings, Warning{
					Code:    "ZERO_WEIGHT",
					Message: fmt.Sprintf("%s/%s is scored with weight 0", sector, md.Key),
				})
			}
		}

		for _, key := range sortedKeys(cat.thresholds[sector]) {
			if _, ok := cat.Metadata(sector, key); !ok {
				warnings = append(warnings, Warning{
					Code:    "ORPHAN_THRESHOLD",
					Message: fmt.Sprintf("%s/%s has a threshold but no metadata", sector, key),
				})
			}
		}
	}

	return warnings
}

func knownCustom(tag contracts.CustomTag) bool {
	for _, t := range contracts.KnownCustomTags() {
		if t == tag {
			return true
		}
	}
	return false
}

func sortedKeys(table map[contracts.MetricKey]contracts.ThresholdSpec) []contracts.MetricKey {
	out := make([]contracts.MetricKey, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
