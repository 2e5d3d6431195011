package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopwords are Portuguese connectives and provider qualifiers that carry
// no meaning for label identity ("Crescimento da Receita (proxy)")
var stopwords = map[string]bool{
	"a": true, "o": true, "e": true, "as": true, "os": true,
	"da": true, "de": true, "do": true, "das": true, "dos": true,
	"em": true, "na": true, "no": true, "por": true, "com": true,
	"para": true, "sobre": true,
	"proxy": true, "calculado": true, "calculada": true,
	"estimado": true, "estimada": true, "ttm": true,
}

// Normalize folds a label to lower-case ASCII words separated by single spaces.
// "Dívida Líquida/EBITDA" → "divida liquida ebitda"
func Normalize(label string) string {
	// Chain keeps per-call state, so it is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, label)
	if err != nil {
		folded = label
	}

	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range folded {
		switch {
		case r > unicode.MaxASCII:
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(unicode.ToLower(r))
		default:
			space = true
		}
	}
	return b.String()
}

// Compact drops stopwords, vowels and spaces from a normalized label.
// "crescimento da receita" → "crscmntrct"
func Compact(normalized string) string {
	return strings.Join(CompactWords(normalized), "")
}

// CompactWords is Compact keeping word boundaries; words left empty are dropped.
// "crescimento da receita" → ["crscmnt", "rct"]
func CompactWords(normalized string) []string {
	var words []string
	for _, word := range strings.Fields(normalized) {
		if stopwords[word] {
			continue
		}
		var b strings.Builder
		for _, r := range word {
			if strings.ContainsRune("aeiou", r) {
				continue
			}
			b.WriteRune(r)
		}
		if b.Len() > 0 {
			words = append(words, b.String())
		}
	}
	return words
}

// containsWords reports whether short occurs as a contiguous run of whole words in long
func containsWords(long, short []string) bool {
	if len(short) == 0 || len(short) > len(long) {
		return false
	}
	for i := 0; i+len(short) <= len(long); i++ {
		match := true
		for j := range short {
			if long[i+j] != short[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
