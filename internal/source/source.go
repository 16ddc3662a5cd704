package source

import (
	"context"
	"time"

	"github.com/rcallahan/memphis-shows/internal/config"
	"github.com/rcallahan/memphis-shows/internal/event"
	"github.com/rcallahan/memphis-shows/internal/venue"
)

// Source is one provenance channel for candidate events. Fetch returns
// the events found in [start, end) along with fetch bookkeeping; a non-nil
// error means the channel failed entirely and the orchestrator records a
// failed SourceResult in its place.
type Source interface {
	Name() string

	// Cacheable reports whether a same-day successful result may be
	// reused instead of re-fetching. Manual sources are always fresh:
	// they change often and are cheap to query.
	Cacheable() bool

	Fetch(ctx context.Context, start, end time.Time) (*event.SourceResult, error)
}

// Registry assembles the fixed, ordered list of sources for a run: the
// manual spreadsheet, the Ticketmaster discovery API, and one scraper per
// venue with a calendar page.
func Registry(cfg *config.Config, norm *venue.Normalizer) []Source {
	sources := []Source{
		NewManual(cfg, norm),
		NewTicketmaster(cfg, norm),
	}
	for _, v := range cfg.Venues {
		if v.CalendarURL == "" || v.Scraper == "manual_only" {
			continue
		}
		sources = append(sources, NewVenueSite(v, cfg.FetchTimeout.Std(), norm))
	}
	return sources
}

func inWindow(d, start, end time.Time) bool {
	day := event.Day(d)
	return !day.Before(event.Day(start)) && day.Before(event.Day(end))
}
