package event

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateFormats are tried in order against trimmed input. Formats without a
// year parse to year 0 and get the reference year substituted.
var dateFormats = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
	"1.2.2006",
	"1.2.06",
	"Jan 2",
	"January 2",
	"1/2",
	"1.2",
}

var monthDayPattern = regexp.MustCompile(`([A-Za-z]{3,9})\.?\s+(\d{1,2})(?:,?\s+(\d{4}))?`)

// ParseDate attempts to parse free-text date strings in the formats that
// show up across manual spreadsheets and venue calendar pages:
// "Feb 12, 2026", "2/12/26", "2.12", "Wed Feb 12", "2026-02-12".
// Inputs without a year are placed in ref's year. Returns false when
// nothing matches.
func ParseDate(text string, ref time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range dateFormats {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		if t.Year() < 2000 {
			t = time.Date(ref.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return Day(t), true
	}

	// Loose "Feb 15", "Wed Feb 12", "February 15, 2026" embedded in text.
	if m := monthDayPattern.FindStringSubmatch(text); m != nil {
		year := ref.Year()
		if m[3] != "" {
			if y, err := strconv.Atoi(m[3]); err == nil {
				year = y
			}
		}
		candidate := m[1] + " " + m[2] + " " + strconv.Itoa(year)
		for _, layout := range []string{"Jan 2 2006", "January 2 2006"} {
			if t, err := time.Parse(layout, candidate); err == nil {
				return Day(t), true
			}
		}
	}

	return time.Time{}, false
}
