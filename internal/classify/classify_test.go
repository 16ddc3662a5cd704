package classify

import (
	"testing"
	"time"

	"github.com/rcallahan/memphis-shows/internal/config"
	"github.com/rcallahan/memphis-shows/internal/event"
)

func testEvent(artist, venue, source string) *event.Event {
	return &event.Event{
		Artist: artist,
		Venue:  venue,
		Date:   event.Day(time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)),
		Source: source,
	}
}

func TestIsMusicEvent(t *testing.T) {
	c := New(config.Default())

	tests := []struct {
		name  string
		event *event.Event
		want  bool
	}{
		{
			name:  "manual source trusted even with non-music keywords",
			event: testEvent("Trivia Extravaganza", "Railgarten", "Manual (Google Sheet)"),
			want:  true,
		},
		{
			name:  "manual source with note trusted",
			event: testEvent("Secret House Show", "Venue TBA", "Manual (from Instagram)"),
			want:  true,
		},
		{
			name:  "music-only venue accepts anything",
			event: testEvent("Wednesday Night Special", "Hi Tone", "Venue: Hi Tone"),
			want:  true,
		},
		{
			name:  "non-music keyword with no music signal rejects",
			event: testEvent("Stand-Up Comedy Showcase", "Railgarten", "Eventbrite"),
			want:  false,
		},
		{
			name:  "non-music keyword with co-occurring music keyword keeps",
			event: testEvent("Trivia Night with DJ Spinning Oldies", "Railgarten", "Eventbrite"),
			want:  true,
		},
		{
			name:  "trivia at a music-only venue still kept",
			event: testEvent("Trivia Night", "Growlers", "Venue: Growlers"),
			want:  true,
		},
		{
			name:  "yoga at a mixed venue rejected",
			event: testEvent("Sunrise Yoga in the Park", "Overton Park Shell", "Venue: Overton Park Shell"),
			want:  false,
		},
		{
			name:  "music-scoped source trusted without keywords",
			event: testEvent("An Evening With Somebody", "Railgarten", "Ticketmaster"),
			want:  true,
		},
		{
			name:  "music keyword accepts",
			event: testEvent("Memphis Soul Revue", "Railgarten", "Eventbrite"),
			want:  true,
		},
		{
			name:  "mixed venue leans toward inclusion",
			event: testEvent("An Evening With Somebody", "Crosstown Arts", "Eventbrite"),
			want:  true,
		},
		{
			name:  "unclassifiable defaults to accept",
			event: testEvent("Mysterious Happening", "Railgarten", "Eventbrite"),
			want:  true,
		},
		{
			name: "raw title participates in keyword matching",
			event: &event.Event{
				Artist:   "Thursday Series",
				RawTitle: "Thursday Series: Film Screening and Discussion",
				Venue:    "Railgarten",
				Date:     event.Day(time.Now()),
				Source:   "Eventbrite",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsMusicEvent(tt.event); got != tt.want {
				t.Errorf("IsMusicEvent(%q at %q via %q) = %v, want %v",
					tt.event.Artist, tt.event.Venue, tt.event.Source, got, tt.want)
			}
		})
	}
}

func TestIsMusicEventIsPure(t *testing.T) {
	c := New(config.Default())
	e := testEvent("Stand-Up Comedy Showcase", "Railgarten", "Eventbrite")

	first := c.IsMusicEvent(e)
	for i := 0; i < 10; i++ {
		if got := c.IsMusicEvent(e); got != first {
			t.Fatalf("IsMusicEvent changed answer on call %d: %v then %v", i+2, first, got)
		}
	}
}

func TestFilter(t *testing.T) {
	c := New(config.Default())

	events := []*event.Event{
		testEvent("Lucero", "Minglewood Hall", "Ticketmaster"),
		testEvent("Stand-Up Comedy Showcase", "Railgarten", "Eventbrite"),
		testEvent("Memphis Soul Revue", "Railgarten", "Eventbrite"),
	}

	kept, removed := c.Filter(events)
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept, got %d", len(kept))
	}
	if kept[0].Artist != "Lucero" || kept[1].Artist != "Memphis Soul Revue" {
		t.Errorf("Filter changed input order: %q, %q", kept[0].Artist, kept[1].Artist)
	}
}
