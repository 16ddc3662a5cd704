// Package calendar renders the final listing as an iCalendar feed, one
// VEVENT per show, so the week's concerts can be subscribed to from any
// calendar client.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/rcallahan/memphis-shows/internal/event"
)

// GenerateICS renders events as a single VCALENDAR. Events without a
// parseable clock time become all-day entries.
func GenerateICS(events []*event.Event, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Memphis Shows//memphis-shows//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICSTime(now.UTC())
	for _, e := range events {
		writeEvent(&ics, e, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, e *event.Event, stamp string) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(ics, "UID:%s@memphis-shows\r\n", e.ID())
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", stamp)

	if start, ok := showStart(e); ok {
		fmt.Fprintf(ics, "DTSTART:%s\r\n", formatICSTime(start))
		fmt.Fprintf(ics, "DTEND:%s\r\n", formatICSTime(start.Add(3*time.Hour)))
	} else {
		fmt.Fprintf(ics, "DTSTART;VALUE=DATE:%s\r\n", e.Date.Format("20060102"))
		fmt.Fprintf(ics, "DTEND;VALUE=DATE:%s\r\n", e.Date.AddDate(0, 0, 1).Format("20060102"))
	}

	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(e.Artist+" at "+e.Venue))

	description := e.DisplayLine()
	if e.URL != "" {
		description += "\nTickets: " + e.URL
	}
	description += "\nSource: " + e.Source
	fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(description))
	fmt.Fprintf(ics, "LOCATION:%s\r\n", escapeICS(e.Venue))
	if e.URL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", e.URL)
	}
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// showStart combines the event date with its display time, when the time
// parses as a clock reading.
func showStart(e *event.Event) (time.Time, bool) {
	for _, layout := range []string{"3 PM", "3:04 PM", "3PM", "3:04PM", "15:04"} {
		if t, err := time.Parse(layout, strings.ToUpper(strings.TrimSpace(e.Time))); err == nil {
			return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(),
				t.Hour(), t.Minute(), 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes text per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
