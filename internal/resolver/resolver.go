// Package resolver binds free-text provider labels to catalog metadata.
// It is a compatibility shim: callers that know the metric key evaluate by
// contracts.IndicatorID and never come here.
package resolver

import (
	"strings"

	"github.com/wonny/quickrate/internal/catalog"
	"github.com/wonny/quickrate/internal/contracts"
)

// minCompactLen is the shortest compacted form allowed to match
const minCompactLen = 2

// minContainLen is the shortest compacted form allowed to match by containment.
// Two-letter forms such as "rc" (ROIC) or "bt" (Beta) are too common to be
// trusted inside longer labels.
const minContainLen = 3

// Tier tells which step of the fallback chain matched
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierNormalized
	TierCompacted
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierNormalized:
		return "normalized"
	case TierCompacted:
		return "compacted"
	default:
		return "none"
	}
}

type form struct {
	normalized string
	compacted  string
	words      []string
}

// Resolver resolves labels against one catalog.
// Normalized and compacted catalog forms are computed once in New.
type Resolver struct {
	cat   *catalog.Catalog
	forms map[contracts.Sector][]form
}

// New precomputes the catalog label forms
func New(cat *catalog.Catalog) *Resolver {
	r := &Resolver{
		cat:   cat,
		forms: make(map[contracts.Sector][]form),
	}
	for _, sector := range cat.Sectors() {
		labels := cat.Labels(sector)
		forms := make([]form, len(labels))
		for i, label := range labels {
			n := Normalize(label)
			words := CompactWords(n)
			forms[i] = form{normalized: n, compacted: strings.Join(words, ""), words: words}
		}
		r.forms[sector] = forms
	}
	return r
}

// Resolve finds the metadata for label in sector
func (r *Resolver) Resolve(sector contracts.Sector, label string) (contracts.IndicatorMetadata, bool) {
	md, tier := r.ResolveTier(sector, label)
	return md, tier != TierNone
}

// ResolveTier is Resolve that also reports the matching tier:
//  1. exact label
//  2. normalized label, first catalog entry wins
//  3. compacted label: equal forms first, then containment either way on
//     whole compacted words (longest catalog form wins, catalog order breaks ties)
func (r *Resolver) ResolveTier(sector contracts.Sector, label string) (contracts.IndicatorMetadata, Tier) {
	if md, ok := r.cat.Find(sector, label); ok {
		return md, TierExact
	}

	forms, ok := r.forms[sector]
	if !ok {
		return contracts.IndicatorMetadata{}, TierNone
	}
	entries := r.cat.Entries(sector)

	n := Normalize(label)
	if n == "" {
		return contracts.IndicatorMetadata{}, TierNone
	}
	for i, f := range forms {
		if f.normalized == n {
			return entries[i], TierNormalized
		}
	}

	words := CompactWords(n)
	c := strings.Join(words, "")
	if len(c) < minCompactLen {
		return contracts.IndicatorMetadata{}, TierNone
	}
	for i, f := range forms {
		if f.compacted == c {
			return entries[i], TierCompacted
		}
	}

	best := -1
	for i, f := range forms {
		var ok bool
		switch {
		case len(f.words) <= len(words):
			ok = len(f.compacted) >= minContainLen && containsWords(words, f.words)
		default:
			ok = len(c) >= minContainLen && containsWords(f.words, words)
		}
		if !ok {
			continue
		}
		if best < 0 || len(f.compacted) > len(forms[best].compacted) {
			best = i
		}
	}
	if best >= 0 {
		return entries[best], TierCompacted
	}
	return contracts.IndicatorMetadata{}, TierNone
}
