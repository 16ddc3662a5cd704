// Package format groups the deduplicated event set into ordered per-day
// buckets for presentation. Every day of the requested window gets a
// bucket, empty days included, so the published listing always shows the
// full window.
package format

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rcallahan/memphis-shows/internal/event"
)

// DayBucket holds one calendar day of the listing.
type DayBucket struct {
	Date   time.Time      `json:"date"`
	Label  string         `json:"label"` // e.g. "Friday, February 13"
	Events []*event.Event `json:"events"`
}

// ByDate buckets events into one ordered bucket per calendar day in
// [start, end). Events outside the window are dropped. Within a bucket,
// events carrying a time sort first in chronological order; events
// without a time follow, each group ordered by artist name.
func ByDate(events []*event.Event, start, end time.Time) []DayBucket {
	start = event.Day(start)
	end = event.Day(end)

	byDay := make(map[string][]*event.Event)
	for _, e := range events {
		d := event.Day(e.Date)
		if d.Before(start) || !d.Before(end) {
			continue
		}
		key := d.Format("2006-01-02")
		byDay[key] = append(byDay[key], e)
	}

	buckets := make([]DayBucket, 0)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		day := byDay[d.Format("2006-01-02")]
		sortDay(day)
		buckets = append(buckets, DayBucket{
			Date:   d,
			Label:  DayLabel(d),
			Events: day,
		})
	}
	return buckets
}

// DayLabel renders the display heading for a date.
func DayLabel(d time.Time) string {
	return d.Format("Monday, January 2")
}

func sortDay(events []*event.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		aTimed, bTimed := a.Time != "", b.Time != ""
		if aTimed != bTimed {
			return aTimed
		}
		if aTimed && bTimed {
			am, bm := clockMinutes(a.Time), clockMinutes(b.Time)
			if am != bm {
				return am < bm
			}
			if a.Time != b.Time {
				return a.Time < b.Time
			}
		}
		return strings.ToLower(a.Artist) < strings.ToLower(b.Artist)
	})
}

var clockPattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*([AaPp][Mm]?)?`)

// clockMinutes extracts a best-effort minutes-since-midnight key from a
// free-text time string: "7 PM", "7:30pm", "Doors 7 / Show 8", "19:00".
// Unparseable strings sort after parsed ones via a large sentinel, then
// lexically.
func clockMinutes(s string) int {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil || m[1] == "" {
		return 24 * 60
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour > 23 || minute > 59 {
		return 24 * 60
	}

	meridiem := strings.ToLower(m[3])
	switch {
	case strings.HasPrefix(meridiem, "p") && hour < 12:
		hour += 12
	case strings.HasPrefix(meridiem, "a") && hour == 12:
		hour = 0
	case meridiem == "" && hour >= 1 && hour <= 11:
		// Show listings without am/pm mean evening.
		hour += 12
	}
	return hour*60 + minute
}
