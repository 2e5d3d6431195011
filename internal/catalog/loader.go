package catalog

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wonny/quickrate/internal/contracts"
)

// Overrides is the versioned YAML patch applied on top of the built-in tables
//
//	version: "2026.10-br"
//	thresholds:
//	  Technology:
//	    pe: {good: 22, medium: 35, reverse: true}
//	weights:
//	  Real Estate:
//	    dividend_yield: 2
type Overrides struct {
	Version    string                                         `yaml:"version"`
	Thresholds map[string]map[string]contracts.ThresholdSpec `yaml:"thresholds"`
	Weights    map[string]map[string]float64                  `yaml:"weights"`
}

// LoadOverrides reads a YAML overrides file and returns it with raw bytes
// KnownFields(true)로 오타/미사용 필드 즉시 실패
func LoadOverrides(path string) (*Overrides, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog overrides: %w", err)
	}

	ov, err := ParseOverrides(data)
	if err != nil {
		return nil, data, err
	}
	return ov, data, nil
}

// ParseOverrides decodes overrides from YAML bytes
func ParseOverrides(data []byte) (*Overrides, error) {
	var ov Overrides
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ov); err != nil {
		return nil, fmt.Errorf("decode catalog overrides: %w", err)
	}
	if ov.Version == "" {
		return nil, ValidationError{"version", "required"}
	}
	return &ov, nil
}

// Load builds the default catalog patched with the overrides file at path.
// An empty path returns the default catalog.
func Load(path string) (*Catalog, error) {
	base := Default()
	if path == "" {
		return base, nil
	}

	ov, _, err := LoadOverrides(path)
	if err != nil {
		return nil, err
	}
	return base.Apply(ov)
}

// Apply returns a new catalog with the overrides applied; cat is unchanged
func (cat *Catalog) Apply(ov *Overrides) (*Catalog, error) {
	thresholds := make(map[contracts.Sector]map[contracts.MetricKey]contracts.ThresholdSpec, len(cat.thresholds))
	for sector := range cat.thresholds {
		thresholds[sector] = cat.Thresholds(sector)
	}
	metadata := make(map[contracts.Sector][]contracts.IndicatorMetadata, len(cat.metadata))
	for sector := range cat.metadata {
		metadata[sector] = cat.Entries(sector)
	}

	for rawSector, table := range ov.Thresholds {
		sector, err := contracts.ParseSector(rawSector)
		if err != nil {
			return nil, ValidationError{"thresholds", err.Error()}
		}
		for rawKey, spec := range table {
			key := contracts.MetricKey(rawKey)
			if _, ok := cat.Metadata(sector, key); !ok {
				return nil, ValidationError{
					Field:   fmt.Sprintf("thresholds.%s.%s", sector, key),
					Message: "unknown metric for sector",
				}
			}
			if err := ValidateSpec(fmt.Sprintf("thresholds.%s.%s", sector, key), spec); err != nil {
				return nil, err
			}
			thresholds[sector][key] = spec
		}
	}

	for rawSector, table := range ov.Weights {
		sector, err := contracts.ParseSector(rawSector)
		if err != nil {
			return nil, ValidationError{"weights", err.Error()}
		}
		for rawKey, w := range table {
			key := contracts.MetricKey(rawKey)
			i, ok := cat.byKey[sector][key]
			if !ok {
				return nil, ValidationError{
					Field:   fmt.Sprintf("weights.%s.%s", sector, key),
					Message: "unknown metric for sector",
				}
			}
			if !finite(w) || w < 0 {
				return nil, ValidationError{
					Field:   fmt.Sprintf("weights.%s.%s", sector, key),
					Message: "must be a finite number >= 0",
				}
			}
			metadata[sector][i].Weight = w
		}
	}

	return New(ov.Version, thresholds, metadata)
}
