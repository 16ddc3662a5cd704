package source

import (
	"testing"
	"time"

	"github.com/rcallahan/memphis-shows/internal/config"
	"github.com/rcallahan/memphis-shows/internal/venue"
)

func TestRegistry(t *testing.T) {
	cfg := &config.Config{
		FetchTimeout: config.Duration(10 * time.Second),
		Venues: []config.Venue{
			{Name: "Hi Tone", CalendarURL: "https://hitone.example/cal", Scraper: "site"},
			{Name: "Instagram Only Bar", Scraper: "manual_only"},
			{Name: "No Calendar Yet"},
		},
	}
	sources := Registry(cfg, venue.NewNormalizer(cfg.AliasMap()))

	if len(sources) != 3 {
		t.Fatalf("expected manual + ticketmaster + 1 venue scraper, got %d sources", len(sources))
	}
	if sources[0].Name() != "Manual (Google Sheet)" {
		t.Errorf("first source = %q", sources[0].Name())
	}
	if sources[0].Cacheable() {
		t.Error("manual source must never be served from cache")
	}
	if sources[1].Name() != "Ticketmaster" {
		t.Errorf("second source = %q", sources[1].Name())
	}
	if sources[2].Name() != "Venue: Hi Tone" {
		t.Errorf("third source = %q", sources[2].Name())
	}
	if !sources[2].Cacheable() {
		t.Error("venue scrapers should be cacheable")
	}
}

func TestInWindow(t *testing.T) {
	start := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"start day included", start, true},
		{"middle", start.AddDate(0, 0, 3), true},
		{"end day excluded", end, false},
		{"before start", start.AddDate(0, 0, -1), false},
		{"time of day ignored", time.Date(2026, 2, 19, 23, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inWindow(tt.d, start, end); got != tt.want {
				t.Errorf("inWindow(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}
