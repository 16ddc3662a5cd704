// Package venue canonicalizes free-text venue names against the curated
// alias registry. Normalization is a pure, idempotent function: feeds
// spell the same room a dozen ways ("hi-tone cafe", "The Hi-Tone",
// "HI TONE") and the listing should show exactly one of them.
package venue

import (
	"sort"
	"strings"
)

// UnknownVenue is returned for empty input.
const UnknownVenue = "Unknown Venue"

// Normalizer maps informal venue spellings to canonical display names.
type Normalizer struct {
	aliases map[string]string // lowercase alias → canonical name
	ordered []string          // aliases in deterministic lookup order
}

// NewNormalizer builds a Normalizer from an alias → canonical table,
// typically config.AliasMap. Substring lookups scan longer aliases first
// so "lafayettes music room" wins over any shorter alias that also
// happens to match.
func NewNormalizer(table map[string]string) *Normalizer {
	aliases := make(map[string]string, len(table))
	for a, canonical := range table {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			aliases[a] = canonical
		}
	}

	ordered := make([]string, 0, len(aliases))
	for a := range aliases {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	return &Normalizer{aliases: aliases, ordered: ordered}
}

// Normalize canonicalizes a raw venue name. Lookup order: exact alias
// match, then bidirectional substring match, then the trimmed input
// itself (title-cased only when the input carried no casing of its own).
func (n *Normalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UnknownVenue
	}

	lower := strings.ToLower(trimmed)
	if canonical, ok := n.aliases[lower]; ok {
		return canonical
	}

	for _, alias := range n.ordered {
		if strings.Contains(lower, alias) || strings.Contains(alias, lower) {
			return n.aliases[alias]
		}
	}

	// Unknown venue: keep the operator's casing if there is any, title-case
	// shouty or all-lowercase feed text. Never force-lowercase a proper name.
	if trimmed == strings.ToLower(trimmed) || trimmed == strings.ToUpper(trimmed) {
		return titleCase(trimmed)
	}
	return trimmed
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
