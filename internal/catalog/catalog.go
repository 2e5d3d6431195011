// Package catalog holds the sector-keyed threshold and indicator metadata
// tables. A Catalog is built once (Default or Load) and passed by reference;
// it is never mutated afterwards, so concurrent readers need no locking.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/wonny/quickrate/internal/contracts"
)

// DefaultVersion tags the built-in tables
const DefaultVersion = "builtin-2026.10"

// Catalog is the immutable ThresholdCatalog + MetricMetadataCatalog pair
// ⭐ SSOT: 임계값/메타데이터 조회는 이 구조체를 통해서만
type Catalog struct {
	version    string
	thresholds map[contracts.Sector]map[contracts.MetricKey]contracts.ThresholdSpec
	metadata   map[contracts.Sector][]contracts.IndicatorMetadata
	byLabel    map[contracts.Sector]map[string]int
	byKey      map[contracts.Sector]map[contracts.MetricKey]int
}

// New builds a catalog from raw tables after validating them
func New(
	version string,
	thresholds map[contracts.Sector]map[contracts.MetricKey]contracts.ThresholdSpec,
	metadata map[contracts.Sector][]contracts.IndicatorMetadata,
) (*Catalog, error) {
	cat := &Catalog{
		version:    version,
		thresholds: thresholds,
		metadata:   metadata,
		byLabel:    make(map[contracts.Sector]map[string]int, len(metadata)),
		byKey:      make(map[contracts.Sector]map[contracts.MetricKey]int, len(metadata)),
	}

	for sector, list := range metadata {
		labels := make(map[string]int, len(list))
		byKey := make(map[contracts.MetricKey]int, len(list))
		for i, md := range list {
			if _, dup := labels[md.Label]; dup {
				return nil, ValidationError{
					Field:   fmt.Sprintf("metadata.%s", sector),
					Message: fmt.Sprintf("duplicate label %q", md.Label),
				}
			}
			if _, dup := byKey[md.Key]; dup {
				return nil, ValidationError{
					Field:   fmt.Sprintf("metadata.%s", sector),
					Message: fmt.Sprintf("duplicate key %q", md.Key),
				}
			}
			labels[md.Label] = i
			byKey[md.Key] = i
		}
		cat.byLabel[sector] = labels
		cat.byKey[sector] = byKey
	}

	if err := Validate(cat); err != nil {
		return nil, err
	}

	return cat, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	cat, err := New(DefaultVersion, buildThresholds(), buildMetadata())
	if err != nil {
		// built-in tables are covered by tests
		panic(fmt.Sprintf("catalog: invalid built-in tables: %v", err))
	}
	return cat
}

// Version returns the catalog version tag
func (cat *Catalog) Version() string {
	return cat.version
}

// Threshold looks up the ThresholdSpec of (sector, key)
func (cat *Catalog) Threshold(sector contracts.Sector, key contracts.MetricKey) (contracts.ThresholdSpec, bool) {
	spec, ok := cat.thresholds[sector][key]
	return spec, ok
}

// Thresholds returns a copy of the sector's threshold table
func (cat *Catalog) Thresholds(sector contracts.Sector) map[contracts.MetricKey]contracts.ThresholdSpec {
	out := make(map[contracts.MetricKey]contracts.ThresholdSpec, len(cat.thresholds[sector]))
	for k, v := range cat.thresholds[sector] {
		out[k] = v
	}
	return out
}

// Find is the exact-label lookup of the metadata catalog
func (cat *Catalog) Find(sector contracts.Sector, label string) (contracts.IndicatorMetadata, bool) {
	i, ok := cat.byLabel[sector][label]
	if !ok {
		return contracts.IndicatorMetadata{}, false
	}
	return cat.metadata[sector][i], true
}

// Metadata looks up an indicator by canonical key
func (cat *Catalog) Metadata(sector contracts.Sector, key contracts.MetricKey) (contracts.IndicatorMetadata, bool) {
	i, ok := cat.byKey[sector][key]
	if !ok {
		return contracts.IndicatorMetadata{}, false
	}
	return cat.metadata[sector][i], true
}

// Entries returns the sector's metadata in catalog order
func (cat *Catalog) Entries(sector contracts.Sector) []contracts.IndicatorMetadata {
	list := cat.metadata[sector]
	out := make([]contracts.IndicatorMetadata, len(list))
	copy(out, list)
	return out
}

// Labels returns the sector's labels in catalog order
func (cat *Catalog) Labels(sector contracts.Sector) []string {
	list := cat.metadata[sector]
	out := make([]string, len(list))
	for i, md := range list {
		out[i] = md.Label
	}
	return out
}

// Sectors returns the sectors the catalog has metadata for, in display order
func (cat *Catalog) Sectors() []contracts.Sector {
	var out []contracts.Sector
	for _, s := range contracts.AllSectors() {
		if _, ok := cat.metadata[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// hashEntry is the serializable part of IndicatorMetadata
type hashEntry struct {
	Label             string                `json:"label"`
	Key               contracts.MetricKey   `json:"key"`
	Weight            float64               `json:"weight"`
	InformationalOnly bool                  `json:"informational_only"`
	DeltaSensitive    bool                  `json:"delta_sensitive"`
	ComplementaryKeys []contracts.MetricKey `json:"complementary_keys"`
	Explanation       string                `json:"explanation,omitempty"`
}

type hashView struct {
	Version    string                                                              `json:"version"`
	Thresholds map[contracts.Sector]map[contracts.MetricKey]contracts.ThresholdSpec `json:"thresholds"`
	Metadata   map[contracts.Sector][]hashEntry                                     `json:"metadata"`
}

// Hash generates a SHA256 hash of the effective catalog (canonical JSON)
// 캐시 키·스냅샷에 카탈로그 버전을 고정하기 위해 사용
func Hash(cat *Catalog) (string, error) {
	view := hashView{
		Version:    cat.version,
		Thresholds: cat.thresholds,
		Metadata:   make(map[contracts.Sector][]hashEntry, len(cat.metadata)),
	}
	for sector, list := range cat.metadata {
		entries := make([]hashEntry, len(list))
		for i, md := range list {
			entries[i] = hashEntry{
				Label:             md.Label,
				Key:               md.Key,
				Weight:            md.Weight,
				InformationalOnly: md.InformationalOnly,
				DeltaSensitive:    md.DeltaSensitive,
				ComplementaryKeys: md.ComplementaryKeys,
				Explanation:       md.Explanation.Text,
			}
		}
		view.Metadata[sector] = entries
	}

	jsonBytes, err := json.Marshal(view)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
