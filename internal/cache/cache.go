// Package cache persists per-source fetch results keyed by calendar day,
// so repeated runs on the same day skip slow network fetches. The cache
// is strictly an optimization: a missing or corrupt file is treated as an
// empty cache, never an error.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rcallahan/memphis-shows/internal/event"
	"github.com/rcallahan/memphis-shows/internal/logger"
)

// Entry is one source's cached fetch outcome.
type Entry struct {
	FetchedDate    string         `json:"fetched_date"` // YYYY-MM-DD
	Success        bool           `json:"success"`
	EventsFound    int            `json:"events_found"`
	EventsFiltered int            `json:"events_filtered"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	Events         []*event.Event `json:"events"`
}

// Cache maps source names to their most recent cached result.
type Cache struct {
	path string

	CacheDate string            `json:"cache_date"`
	Sources   map[string]*Entry `json:"sources"`
}

// Load reads the cache file at path. A missing file, bad JSON, or wrong
// shape all yield an empty cache.
func Load(path string) *Cache {
	c := &Cache{path: path, Sources: make(map[string]*Entry)}
	if path == "" {
		return c
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cache unreadable, starting fresh", logger.Fields{"path": path, "reason": err.Error()})
		}
		return c
	}

	var loaded Cache
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Warn("cache corrupt, starting fresh", logger.Fields{"path": path, "reason": err.Error()})
		return c
	}
	if loaded.Sources == nil {
		loaded.Sources = make(map[string]*Entry)
	}
	loaded.path = path
	return &loaded
}

// FreshToday reports whether source has a successful entry fetched on
// today's calendar date.
func (c *Cache) FreshToday(source string, now time.Time) bool {
	entry, ok := c.Sources[source]
	if !ok || !entry.Success {
		return false
	}
	return entry.FetchedDate == now.Format("2006-01-02")
}

// Result reconstructs a SourceResult from the cached entry, re-filtering
// events against the current date range. Cached rows that no longer
// parse into the window are dropped one at a time.
func (c *Cache) Result(source string, start, end time.Time) *event.SourceResult {
	entry := c.Sources[source]
	res := event.NewSourceResult(source)
	if entry == nil {
		return res
	}

	for _, e := range entry.Events {
		if e == nil || e.Artist == "" {
			continue
		}
		d := event.Day(e.Date)
		if d.Before(event.Day(start)) || !d.Before(event.Day(end)) {
			continue
		}
		res.Events = append(res.Events, e)
	}
	res.EventsFound = entry.EventsFound
	res.EventsFiltered = entry.EventsFiltered
	return res
}

// Store records a source result in memory. Save writes it to disk.
func (c *Cache) Store(res *event.SourceResult, now time.Time) {
	c.Sources[res.SourceName] = &Entry{
		FetchedDate:    now.Format("2006-01-02"),
		Success:        res.Success,
		EventsFound:    res.EventsFound,
		EventsFiltered: res.EventsFiltered,
		ErrorMessage:   res.ErrorMessage,
		Events:         res.Events,
	}
}

// Save writes the cache to its file. A cache loaded with an empty path is
// a no-op.
func (c *Cache) Save(now time.Time) error {
	if c.path == "" {
		return nil
	}
	c.CacheDate = now.Format("2006-01-02")

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}
