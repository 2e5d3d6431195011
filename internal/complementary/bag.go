// Package complementary builds the per-company auxiliary metrics bag
// ("complementares") used to contextually adjust indicator scores.
package complementary

import (
	"encoding/json"
	"sort"

	"github.com/wonny/quickrate/internal/contracts"
)

// Bag is a sector-tagged, read-only set of auxiliary metrics.
// A Technology bag is never applied to a Real Estate evaluation.
type Bag struct {
	sector contracts.Sector
	values map[contracts.MetricKey]float64
}

// NewBag copies values into a new bag tagged with sector
func NewBag(sector contracts.Sector, values map[contracts.MetricKey]float64) *Bag {
	b := &Bag{sector: sector, values: make(map[contracts.MetricKey]float64, len(values))}
	for k, v := range values {
		b.values[k] = v
	}
	return b
}

// FromValues builds a bag from an already-computed numeric map, as sent by
// callers that ran the builder themselves. Unknown keys and non-finite values
// are dropped and returned sorted so the caller can report them.
func FromValues(sector contracts.Sector, values map[string]float64) (*Bag, []string) {
	b := &Bag{sector: sector, values: make(map[contracts.MetricKey]float64, len(values))}
	var dropped []string
	for k, v := range values {
		key := contracts.MetricKey(k)
		if !key.Known() || !isFinite(v) {
			dropped = append(dropped, k)
			continue
		}
		b.values[key] = v
	}
	sort.Strings(dropped)
	return b, dropped
}

// With returns a copy of b with values laid over its contents
func (b *Bag) With(values map[contracts.MetricKey]float64) *Bag {
	out := NewBag(b.Sector(), b.Values())
	for k, v := range values {
		out.values[k] = v
	}
	return out
}

// Sector returns the sector the bag was built for
func (b *Bag) Sector() contracts.Sector {
	if b == nil {
		return ""
	}
	return b.sector
}

// Get returns the value of key; a nil bag is empty
func (b *Bag) Get(key contracts.MetricKey) (float64, bool) {
	if b == nil {
		return 0, false
	}
	v, ok := b.values[key]
	return v, ok
}

// Len returns the number of metrics in the bag
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.values)
}

// Keys returns the bag keys in sorted order
func (b *Bag) Keys() []contracts.MetricKey {
	if b == nil {
		return nil
	}
	out := make([]contracts.MetricKey, 0, len(b.values))
	for k := range b.values {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Values returns a copy of the bag contents
func (b *Bag) Values() map[contracts.MetricKey]float64 {
	out := make(map[contracts.MetricKey]float64, b.Len())
	if b == nil {
		return out
	}
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// MarshalJSON renders {"sector": ..., "values": {...}}
func (b *Bag) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Sector contracts.Sector                `json:"sector"`
		Values map[contracts.MetricKey]float64 `json:"values"`
	}{b.Sector(), b.Values()})
}

// builder accumulates bag values during Build
type builder struct {
	values map[contracts.MetricKey]float64
}

// put stores a parsed raw prop; absent inputs are skipped
func (bb *builder) put(key contracts.MetricKey, raw string) {
	if v, ok := ParseNumber(raw); ok {
		bb.values[key] = v
	}
}

// get reads a value stored earlier in the same build
func (bb *builder) get(key contracts.MetricKey) (float64, bool) {
	v, ok := bb.values[key]
	return v, ok
}

// derive stores fn(inputs) only when every input is present and fn succeeds
func (bb *builder) derive(key contracts.MetricKey, fn func(v []float64) (float64, bool), inputs ...contracts.MetricKey) {
	vals := make([]float64, len(inputs))
	for i, in := range inputs {
		v, ok := bb.values[in]
		if !ok {
			return
		}
		vals[i] = v
	}
	if out, ok := fn(vals); ok && isFinite(out) {
		bb.values[key] = out
	}
}
