package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/rcallahan/memphis-shows/internal/config"
	"github.com/rcallahan/memphis-shows/internal/event"
	"github.com/rcallahan/memphis-shows/internal/venue"
)

const scraperUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// genericSelectors cover the common CMS event-listing markup: WordPress
// events plugins, Squarespace collections, and plain "event card" class
// conventions. Tried in order; the first selector with hits wins.
var genericSelectors = []string{
	".tribe-events-list .tribe-events-list-event",
	".type-tribe_events",
	".eventon_list_event a",
	".eventlist-event",
	".summary-item",
	".event-item",
	".event-listing",
	".event-card",
	"[class*='event-item']",
	"article[class*='event']",
}

// VenueSite scrapes one venue's own calendar page. Structured JSON-LD
// data is preferred; a generic card parse is the fallback. Each venue is
// an independent source so one broken page never hides the others.
type VenueSite struct {
	venue  config.Venue
	norm   *venue.Normalizer
	client *http.Client
}

// NewVenueSite creates a scraper source for a single venue.
func NewVenueSite(v config.Venue, timeout time.Duration, norm *venue.Normalizer) *VenueSite {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &VenueSite{
		venue:  v,
		norm:   norm,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *VenueSite) Name() string { return "Venue: " + s.venue.Name }

func (s *VenueSite) Cacheable() bool { return true }

// Fetch downloads and parses the venue's calendar page.
func (s *VenueSite) Fetch(ctx context.Context, start, end time.Time) (*event.SourceResult, error) {
	res := event.NewSourceResult(s.Name())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.venue.CalendarURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", scraperUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	events := s.parseJSONLD(doc, start)
	if len(events) == 0 {
		events = s.parseCards(doc, start)
	}

	res.EventsFound = len(events)
	for _, e := range events {
		if inWindow(e.Date, start, end) {
			res.Events = append(res.Events, e)
		}
	}
	if res.EventsFound == 0 {
		res.ErrorMessage = "0 events parsed — page structure may have changed"
	}
	return res, nil
}

// jsonldEvent is the slice of a Schema.org Event we read.
type jsonldEvent struct {
	Type      string          `json:"@type"`
	Name      string          `json:"name"`
	StartDate string          `json:"startDate"`
	URL       string          `json:"url"`
	Location  json.RawMessage `json:"location"`
	Graph     []jsonldEvent   `json:"@graph"`
}

// parseJSONLD extracts Schema.org Event/MusicEvent entries embedded in
// script tags. Many venue sites publish these for search engines, and
// they are far more stable than the page markup.
func (s *VenueSite) parseJSONLD(doc *goquery.Document, ref time.Time) []*event.Event {
	var events []*event.Event

	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}

		var items []jsonldEvent
		var single jsonldEvent
		if err := json.Unmarshal([]byte(raw), &single); err == nil {
			items = append(items, single)
			items = append(items, single.Graph...)
		} else if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return
		}

		for _, item := range items {
			if item.Type != "Event" && item.Type != "MusicEvent" {
				continue
			}
			if e := s.jsonldToEvent(item, ref); e != nil {
				events = append(events, e)
			}
		}
	})

	return events
}

func (s *VenueSite) jsonldToEvent(item jsonldEvent, ref time.Time) *event.Event {
	name := strings.TrimSpace(item.Name)
	if name == "" || item.StartDate == "" {
		return nil
	}

	var date time.Time
	var timeStr string
	if strings.Contains(item.StartDate, "T") {
		dt, err := time.Parse(time.RFC3339, item.StartDate)
		if err != nil {
			dt, err = time.Parse("2006-01-02T15:04:05", item.StartDate)
			if err != nil {
				return nil
			}
		}
		date = event.Day(dt)
		if dt.Minute() == 0 {
			timeStr = dt.Format("3 PM")
		} else {
			timeStr = dt.Format("3:04 PM")
		}
	} else {
		d, ok := event.ParseDate(item.StartDate, ref)
		if !ok {
			return nil
		}
		date = d
	}

	// Prefer the embedded location name over the page's venue; festivals
	// and co-promotions list other rooms on a venue's own calendar.
	venueName := s.venue.Name
	var loc struct {
		Name string `json:"name"`
	}
	if len(item.Location) > 0 && json.Unmarshal(item.Location, &loc) == nil && loc.Name != "" {
		venueName = s.norm.Normalize(loc.Name)
	}

	return &event.Event{
		Artist:   name,
		Venue:    venueName,
		Date:     date,
		Time:     timeStr,
		Source:   s.Name(),
		URL:      item.URL,
		RawTitle: item.Name,
	}
}

var timeTextPattern = regexp.MustCompile(`(?i)\b\d{1,2}(:\d{2})?\s*[ap]\.?m\.?\b`)

// parseCards is the generic DOM fallback: find event-card elements, take
// the first heading-ish line as the title, and regex a date out of the
// card text.
func (s *VenueSite) parseCards(doc *goquery.Document, ref time.Time) []*event.Event {
	var cards *goquery.Selection
	for _, selector := range genericSelectors {
		found := doc.Find(selector)
		if found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		return nil
	}

	var events []*event.Event
	cards.Each(func(i int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find("h1, h2, h3, h4, .title, [class*='title']").First().Text())
		text := strings.TrimSpace(card.Text())
		if title == "" {
			// Fall back to the card's first non-empty line.
			for _, line := range strings.Split(text, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					title = line
					break
				}
			}
		}
		if title == "" || len(title) < 3 {
			return
		}

		date, ok := event.ParseDate(extractDateText(text), ref)
		if !ok {
			return
		}

		url := ""
		if href, exists := card.Find("a[href]").First().Attr("href"); exists {
			url = href
		} else if href, exists := card.Attr("href"); exists {
			url = href
		}

		events = append(events, &event.Event{
			Artist:   title,
			Venue:    s.venue.Name,
			Date:     date,
			Time:     strings.TrimSpace(timeTextPattern.FindString(text)),
			Source:   s.Name(),
			URL:      absoluteURL(s.venue.CalendarURL, url),
			RawTitle: title,
		})
	})
	return events
}

var cardDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{1,2}[./]\d{1,2}[./]\d{2,4}`),
	regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2}(,?\s+\d{4})?`),
	regexp.MustCompile(`\d{1,2}[./]\d{1,2}`),
}

// extractDateText pulls the first date-looking fragment out of card text.
func extractDateText(text string) string {
	for _, p := range cardDatePatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// absoluteURL resolves a scraped href against the calendar page URL.
func absoluteURL(base, href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		if i := strings.Index(base, "://"); i >= 0 {
			if j := strings.Index(base[i+3:], "/"); j >= 0 {
				return base[:i+3+j] + href
			}
			return base + href
		}
	}
	return href
}
