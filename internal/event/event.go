package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// Event represents a single music event pulled from one source.
// Artist and Venue are always non-empty once a record leaves its adapter;
// adapters substitute "Venue TBA" when a venue is missing.
type Event struct {
	Artist   string    `json:"artist"`
	Venue    string    `json:"venue"`
	Date     time.Time `json:"date"`                // calendar date, midnight UTC
	Time     string    `json:"time,omitempty"`      // display string, e.g. "8 PM" or "Doors 7 / Show 8"
	Source   string    `json:"source"`              // provenance label, e.g. "Venue: Hi Tone"
	URL      string    `json:"url,omitempty"`       // ticket/event page link
	RawTitle string    `json:"raw_title,omitempty"` // untouched title text, kept for classification
}

// Day truncates a time to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey returns the event's date as YYYY-MM-DD.
func (e *Event) DateKey() string {
	return e.Date.Format("2006-01-02")
}

// ID creates a deterministic identifier from the fields that define
// a real-world show. Used for calendar UIDs.
func (e *Event) ID() string {
	h := sha1.New()
	h.Write([]byte(e.Artist + "|" + e.Venue + "|" + e.DateKey()))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// DisplayLine formats as "ARTIST — VENUE" or "ARTIST — VENUE (TIME)".
func (e *Event) DisplayLine() string {
	line := e.Artist + " — " + e.Venue
	if e.Time != "" {
		line += " (" + e.Time + ")"
	}
	return line
}

// Less orders events by date, then venue, then artist (case-insensitive).
// This is the canonical ordering of the final listing.
func Less(a, b *Event) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	av, bv := strings.ToLower(a.Venue), strings.ToLower(b.Venue)
	if av != bv {
		return av < bv
	}
	return strings.ToLower(a.Artist) < strings.ToLower(b.Artist)
}

// SourceResult holds the outcome of one source fetch for one run.
// It is created by the adapter (or the orchestrator, on failure) and
// never mutated after that.
type SourceResult struct {
	SourceName     string    `json:"source_name"`
	Events         []*Event  `json:"events"`
	Success        bool      `json:"success"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	EventsFound    int       `json:"events_found"`    // raw count before any filtering
	EventsFiltered int       `json:"events_filtered"` // removed as non-music
	FetchedAt      time.Time `json:"fetched_at"`
}

// NewSourceResult creates an empty successful result for a source.
func NewSourceResult(name string) *SourceResult {
	return &SourceResult{
		SourceName: name,
		Events:     make([]*Event, 0),
		Success:    true,
		FetchedAt:  time.Now().UTC(),
	}
}

// Failed creates a failed result carrying a truncated error description.
func Failed(name string, err error) *SourceResult {
	msg := err.Error()
	if r := []rune(msg); len(r) > 100 {
		msg = string(r[:100])
	}
	return &SourceResult{
		SourceName:   name,
		Events:       make([]*Event, 0),
		Success:      false,
		ErrorMessage: msg,
		FetchedAt:    time.Now().UTC(),
	}
}

// StatusLine renders a one-line operator summary of the fetch outcome.
func (r *SourceResult) StatusLine() string {
	if !r.Success {
		return fmt.Sprintf("FAIL %s: %s", r.SourceName, r.ErrorMessage)
	}
	if r.EventsFound == 0 {
		line := fmt.Sprintf("WARN %s: 0 events found", r.SourceName)
		if r.ErrorMessage != "" {
			line += " — " + r.ErrorMessage
		}
		return line
	}
	line := fmt.Sprintf("OK   %s: %d event(s) found", r.SourceName, r.EventsFound)
	if r.EventsFiltered > 0 {
		line += fmt.Sprintf(" (%d filtered as non-music)", r.EventsFiltered)
	}
	return line
}
