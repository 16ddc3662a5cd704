package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rcallahan/memphis-shows/internal/config"
)

func venueSiteFor(t *testing.T, html string) (*VenueSite, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)

	v := config.Venue{Name: "Hi Tone", CalendarURL: srv.URL + "/calendar", Scraper: "site"}
	return NewVenueSite(v, 5*time.Second, testNormalizer()), srv
}

func TestVenueSiteParsesJSONLD(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">
[
  {"@type": "MusicEvent", "name": "Lucero", "startDate": "2026-02-15T20:00:00-06:00",
   "url": "https://tickets.example/lucero",
   "location": {"@type": "Place", "name": "Hi Tone Cafe"}},
  {"@type": "Event", "name": "DJ Spanish Fly", "startDate": "2026-02-14"},
  {"@type": "Place", "name": "Not An Event", "startDate": "2026-02-14"}
]
</script>
</head><body></body></html>`

	s, _ := venueSiteFor(t, html)
	start, end := testWindow()
	res, err := s.Fetch(context.Background(), start, end)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.EventsFound != 2 {
		t.Fatalf("expected 2 parsed events, got %d", res.EventsFound)
	}

	lucero := res.Events[0]
	if lucero.Artist != "Lucero" {
		t.Errorf("artist = %q", lucero.Artist)
	}
	if lucero.Time != "8 PM" {
		t.Errorf("time = %q, want 8 PM", lucero.Time)
	}
	if lucero.Venue != "Hi Tone" {
		t.Errorf("embedded location should normalize to the canonical name, got %q", lucero.Venue)
	}
	if lucero.URL != "https://tickets.example/lucero" {
		t.Errorf("url = %q", lucero.URL)
	}
	if lucero.Source != "Venue: Hi Tone" {
		t.Errorf("source = %q", lucero.Source)
	}

	dj := res.Events[1]
	if dj.Time != "" {
		t.Errorf("date-only startDate should carry no time, got %q", dj.Time)
	}
	if dj.Venue != "Hi Tone" {
		t.Errorf("missing location should default to the page's venue, got %q", dj.Venue)
	}
}

func TestVenueSiteParsesGraphJSONLD(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">
{"@context": "https://schema.org", "@graph": [
  {"@type": "Event", "name": "Cory Branan", "startDate": "2026-02-16"}
]}
</script>
</head><body></body></html>`

	s, _ := venueSiteFor(t, html)
	start, end := testWindow()
	res, err := s.Fetch(context.Background(), start, end)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(res.Events) != 1 || res.Events[0].Artist != "Cory Branan" {
		t.Errorf("expected the @graph event, got %v", res.Events)
	}
}

func TestVenueSiteCardFallback(t *testing.T) {
	html := `<html><body>
<div class="event-card">
  <h3>Glorious Abhor</h3>
  <p>Sunday, Feb 15 · Doors 7 PM</p>
  <a href="/shows/glorious-abhor">Tickets</a>
</div>
<div class="event-card">
  <h3>Comedy Night</h3>
  <p>No date here</p>
</div>
</body></html>`

	s, srv := venueSiteFor(t, html)
	start, end := testWindow()
	res, err := s.Fetch(context.Background(), start, end)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(res.Events) != 1 {
		t.Fatalf("expected 1 card event (dateless card skipped), got %d", len(res.Events))
	}

	e := res.Events[0]
	if e.Artist != "Glorious Abhor" {
		t.Errorf("artist = %q", e.Artist)
	}
	if !e.Date.Equal(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", e.Date)
	}
	if e.Time != "7 PM" {
		t.Errorf("time = %q, want 7 PM", e.Time)
	}
	if e.URL != srv.URL+"/shows/glorious-abhor" {
		t.Errorf("relative href should resolve against the page host, got %q", e.URL)
	}
}

func TestVenueSiteEmptyPage(t *testing.T) {
	s, _ := venueSiteFor(t, "<html><body><p>Closed for renovations</p></body></html>")
	start, end := testWindow()
	res, err := s.Fetch(context.Background(), start, end)
	if err != nil {
		t.Fatalf("an empty page is a warning, not an error: %v", err)
	}
	if !res.Success || len(res.Events) != 0 {
		t.Errorf("expected empty successful result, got %+v", res)
	}
	if res.ErrorMessage == "" {
		t.Error("expected a note that nothing parsed")
	}
}

func TestVenueSiteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	v := config.Venue{Name: "Hi Tone", CalendarURL: srv.URL}
	s := NewVenueSite(v, 5*time.Second, testNormalizer())

	start, end := testWindow()
	if _, err := s.Fetch(context.Background(), start, end); err == nil {
		t.Error("a non-200 page should fail the source")
	}
}

func TestExtractDateText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Show on 2026-02-15 at 8", "2026-02-15"},
		{"Friday 2/15/2026 doors at 7", "2/15/2026"},
		{"Sat Feb 15 · 9 PM", "Feb 15"},
		{"February 15, 2026", "February 15, 2026"},
		{"coming 2.15", "2.15"},
		{"no dates at all", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := extractDateText(tt.input); got != tt.expected {
				t.Errorf("extractDateText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		href     string
		expected string
	}{
		{"already absolute", "https://hitone.example/cal", "https://x.example/t", "https://x.example/t"},
		{"rooted path", "https://hitone.example/cal/page", "/shows/1", "https://hitone.example/shows/1"},
		{"empty", "https://hitone.example/cal", "", ""},
		{"relative left alone", "https://hitone.example/cal", "shows/1", "shows/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := absoluteURL(tt.base, tt.href); got != tt.expected {
				t.Errorf("absoluteURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.expected)
			}
		})
	}
}
