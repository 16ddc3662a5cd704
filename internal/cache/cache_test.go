package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcallahan/memphis-shows/internal/event"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoadMissingFile(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "nope.json"))
	if c == nil || c.Sources == nil {
		t.Fatal("missing file should yield an empty cache")
	}
	if len(c.Sources) != 0 {
		t.Errorf("expected empty cache, got %d sources", len(c.Sources))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	c := Load(path)
	if len(c.Sources) != 0 {
		t.Errorf("corrupt cache should load empty, got %d sources", len(c.Sources))
	}
}

func TestStoreSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	now := time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)

	res := event.NewSourceResult("Ticketmaster")
	res.Events = append(res.Events, &event.Event{
		Artist: "Lucero", Venue: "Minglewood Hall",
		Date: date(2026, 2, 15), Source: "Ticketmaster",
	})
	res.EventsFound = 3
	res.EventsFiltered = 2

	c := Load(path)
	c.Store(res, now)
	if err := c.Save(now); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded := Load(path)
	if !reloaded.FreshToday("Ticketmaster", now) {
		t.Error("stored entry should be fresh on the same day")
	}
	got := reloaded.Result("Ticketmaster", date(2026, 2, 13), date(2026, 2, 20))
	if len(got.Events) != 1 || got.Events[0].Artist != "Lucero" {
		t.Fatalf("expected the cached event back, got %v", got.Events)
	}
	if got.EventsFound != 3 || got.EventsFiltered != 2 {
		t.Errorf("counts not preserved: found=%d filtered=%d", got.EventsFound, got.EventsFiltered)
	}
}

func TestFreshToday(t *testing.T) {
	now := time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)
	c := Load("")

	tests := []struct {
		name  string
		entry *Entry
		want  bool
	}{
		{"no entry", nil, false},
		{"fetched today", &Entry{FetchedDate: "2026-02-12", Success: true}, true},
		{"fetched yesterday", &Entry{FetchedDate: "2026-02-11", Success: true}, false},
		{"failed fetch never fresh", &Entry{FetchedDate: "2026-02-12", Success: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Sources = map[string]*Entry{}
			if tt.entry != nil {
				c.Sources["X"] = tt.entry
			}
			if got := c.FreshToday("X", now); got != tt.want {
				t.Errorf("FreshToday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultRefiltersWindow(t *testing.T) {
	c := Load("")
	c.Sources["X"] = &Entry{
		FetchedDate: "2026-02-12",
		Success:     true,
		Events: []*event.Event{
			{Artist: "In Window", Venue: "Hi Tone", Date: date(2026, 2, 15)},
			{Artist: "Before Window", Venue: "Hi Tone", Date: date(2026, 2, 12)},
			{Artist: "After Window", Venue: "Hi Tone", Date: date(2026, 2, 20)},
			{Venue: "Hi Tone", Date: date(2026, 2, 15)}, // no artist, dropped
			nil,
		},
	}

	got := c.Result("X", date(2026, 2, 13), date(2026, 2, 20))
	if len(got.Events) != 1 {
		t.Fatalf("expected 1 event inside the window, got %d", len(got.Events))
	}
	if got.Events[0].Artist != "In Window" {
		t.Errorf("wrong event survived: %q", got.Events[0].Artist)
	}
}

func TestSaveEmptyPathIsNoop(t *testing.T) {
	c := Load("")
	if err := c.Save(time.Now()); err != nil {
		t.Errorf("Save() with empty path should be a no-op, got %v", err)
	}
}
