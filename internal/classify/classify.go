// Package classify decides whether a raw record is a music event.
//
// The rules are ordered and the first match wins. The classifier is tuned
// to favor completeness over precision: a missed real show is worse than
// one extra listing, so the final fallthrough accepts and logs.
package classify

import (
	"strings"

	"github.com/rcallahan/memphis-shows/internal/config"
	"github.com/rcallahan/memphis-shows/internal/event"
	"github.com/rcallahan/memphis-shows/internal/logger"
)

// Classifier is a pure predicate over an event's artist, raw title,
// venue, and source. It carries only read-only keyword and venue tables.
type Classifier struct {
	musicKeywords    []string
	nonMusicKeywords []string
	musicOnlyVenues  map[string]bool
	mixedVenues      map[string]bool
	trustedPrefixes  []string
	scopedSources    map[string]bool
}

// New builds a Classifier from the process configuration.
func New(cfg *config.Config) *Classifier {
	scoped := make(map[string]bool, len(cfg.MusicScopedSources))
	for _, s := range cfg.MusicScopedSources {
		scoped[s] = true
	}
	return &Classifier{
		musicKeywords:    lowerAll(cfg.MusicKeywords),
		nonMusicKeywords: lowerAll(cfg.NonMusicKeywords),
		musicOnlyVenues:  cfg.MusicOnlyVenues(),
		mixedVenues:      cfg.MixedVenues(),
		trustedPrefixes:  cfg.TrustedSourcePrefixes,
		scopedSources:    scoped,
	}
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// IsMusicEvent reports whether the event should appear in the listing.
//
// Rule order:
//  1. manually-curated sources are trusted outright
//  2. music-only venues host nothing else
//  3. a non-music keyword with no co-occurring music keyword rejects
//  4. sources already scoped to a music category are trusted
//  5. any music keyword accepts
//  6. mixed-use venues lean toward inclusion
//  7. default accept, flagged for diagnostics
func (c *Classifier) IsMusicEvent(e *event.Event) bool {
	for _, prefix := range c.trustedPrefixes {
		if strings.HasPrefix(e.Source, prefix) {
			return true
		}
	}

	if c.musicOnlyVenues[e.Venue] {
		return true
	}

	text := strings.ToLower(e.Artist + " " + e.RawTitle)
	if c.hasKeyword(text, c.nonMusicKeywords) && !c.hasKeyword(text, c.musicKeywords) {
		return false
	}

	if c.scopedSources[e.Source] {
		return true
	}

	if c.hasKeyword(text, c.musicKeywords) {
		return true
	}

	if c.mixedVenues[e.Venue] {
		return true
	}

	logger.Debug("keeping unclassified event", logger.Fields{
		"artist": e.Artist,
		"venue":  e.Venue,
		"source": e.Source,
	})
	return true
}

func (c *Classifier) hasKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Filter keeps the music events from a candidate list and returns how
// many were rejected. Input order is preserved.
func (c *Classifier) Filter(events []*event.Event) ([]*event.Event, int) {
	kept := make([]*event.Event, 0, len(events))
	removed := 0
	for _, e := range events {
		if c.IsMusicEvent(e) {
			kept = append(kept, e)
		} else {
			removed++
			logger.Debug("filtered non-music event", logger.Fields{
				"artist": e.Artist,
				"venue":  e.Venue,
				"source": e.Source,
			})
		}
	}
	return kept, removed
}
