// Package dedup collapses multiple reports of the same real-world show
// into one event.
//
// Events are grouped by (date, normalized venue) and clustered within a
// group by artist-name similarity. Each cluster resolves to the event
// carrying the most useful detail; ties keep the one seen first, so the
// result is deterministic for a given input order and, as a set,
// independent of input order.
package dedup

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rcallahan/memphis-shows/internal/event"
)

// jaccardThreshold is the word-overlap ratio above which two normalized
// artist names are considered the same act.
const jaccardThreshold = 0.6

var (
	punctPattern  = regexp.MustCompile(`[^\w\s]`)
	spacesPattern = regexp.MustCompile(`\s+`)

	leadingTokens = []string{"the ", "a ", "an ", "dj "}
	// Trailing filler words that venues append to an act's name.
	trailingTokens = map[string]bool{
		"live": true, "concert": true, "tour": true, "show": true,
		"band": true, "trio": true, "presents": true, "present": true,
		"featuring": true, "feat": true, "ft": true,
	}

	// Venue strings that carry no real venue information; an event whose
	// venue is one of these scores no venue point and ranks in the lowest
	// source tier.
	placeholderVenues = map[string]bool{
		"unknown venue": true, "venue tba": true, "tba": true,
		"see listing": true, "various locations": true,
	}
)

// Deduplicate merges duplicate reports from the unioned candidate set and
// returns the survivors sorted by (date, venue, artist). Cross-date or
// cross-venue near-duplicates are never merged; a rescheduled show is a
// different listing.
func Deduplicate(events []*event.Event) []*event.Event {
	if len(events) == 0 {
		return []*event.Event{}
	}

	type group struct {
		clusters []*event.Event // one representative per cluster
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, e := range events {
		key := e.DateKey() + "|" + venueKey(e.Venue)
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}

		matched := false
		for i, rep := range g.clusters {
			if artistsMatch(e.Artist, rep.Artist) {
				// Strictly higher score replaces; ties keep the earlier event.
				if detailScore(e) > detailScore(rep) {
					g.clusters[i] = e
				}
				matched = true
				break
			}
		}
		if !matched {
			g.clusters = append(g.clusters, e)
		}
	}

	deduped := make([]*event.Event, 0, len(events))
	for _, key := range order {
		deduped = append(deduped, groups[key].clusters...)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return event.Less(deduped[i], deduped[j])
	})
	return deduped
}

// venueKey normalizes a venue name for grouping: lowercase, leading "the"
// stripped, punctuation removed, whitespace collapsed.
func venueKey(venue string) string {
	s := strings.ToLower(strings.TrimSpace(venue))
	s = strings.TrimPrefix(s, "the ")
	s = punctPattern.ReplaceAllString(s, "")
	s = spacesPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// normalizeArtist reduces an artist name for comparison: lowercase,
// leading articles and "dj" stripped, trailing filler words stripped,
// punctuation removed, whitespace collapsed.
func normalizeArtist(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range leadingTokens {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}
	s = punctPattern.ReplaceAllString(s, "")
	s = spacesPattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	words := strings.Fields(s)
	for len(words) > 1 && trailingTokens[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// artistsMatch reports whether two artist names likely refer to the same
// act: exact after normalization, substring containment either direction
// ("Lucero" vs "Lucero w/ Special Guests"), or word-set Jaccard overlap
// above the threshold (word-order differences).
func artistsMatch(a, b string) bool {
	na, nb := normalizeArtist(a), normalizeArtist(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return jaccard(na, nb) > jaccardThreshold
}

func jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// detailScore measures how much useful information an event carries.
// Source tier dominates, then presence of a time, a URL, and a confirmed
// venue each add one point.
func detailScore(e *event.Event) int {
	score := sourceTier(e.Source)
	if e.Time != "" {
		score++
	}
	if e.URL != "" {
		score++
	}
	if !placeholderVenues[strings.ToLower(strings.TrimSpace(e.Venue))] {
		score++
	}
	return score
}

// sourceTier ranks provenance channels by trust: operator-entered and
// venue-direct sources outrank editorial listing sites, which outrank
// generic discovery APIs, which outrank unstructured scrapes.
func sourceTier(source string) int {
	switch {
	case strings.HasPrefix(source, "Manual"):
		return 8
	case strings.HasPrefix(source, "Venue:"):
		return 6
	case source == "Memphis Flyer" || source == "Eventbrite":
		return 4
	case source == "Ticketmaster" || source == "Bandsintown" || source == "DICE":
		return 2
	default:
		return 0
	}
}
