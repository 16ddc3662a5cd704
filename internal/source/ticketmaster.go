package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rcallahan/memphis-shows/internal/config"
	"github.com/rcallahan/memphis-shows/internal/event"
	"github.com/rcallahan/memphis-shows/internal/venue"
)

// Ticketmaster queries the Discovery API for music-classified events
// around the configured coordinates. The upstream query carries
// classificationName=music, so the classifier trusts this channel.
type Ticketmaster struct {
	cfg    config.TicketmasterConfig
	norm   *venue.Normalizer
	client *http.Client
}

// NewTicketmaster creates the Discovery API source.
func NewTicketmaster(cfg *config.Config, norm *venue.Normalizer) *Ticketmaster {
	timeout := cfg.Ticketmaster.HTTP.Timeout.Std()
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Ticketmaster{
		cfg:    cfg.Ticketmaster,
		norm:   norm,
		client: &http.Client{Timeout: timeout},
	}
}

func (t *Ticketmaster) Name() string { return "Ticketmaster" }

func (t *Ticketmaster) Cacheable() bool { return true }

// discoveryResponse mirrors the slice of the Discovery payload we read.
type discoveryResponse struct {
	Embedded struct {
		Events []discoveryEvent `json:"events"`
	} `json:"_embedded"`
}

type discoveryEvent struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
		} `json:"venues"`
	} `json:"_embedded"`
}

// Fetch queries the API once for the whole window. An unconfigured API
// key short-circuits to an informational empty result.
func (t *Ticketmaster) Fetch(ctx context.Context, start, end time.Time) (*event.SourceResult, error) {
	res := event.NewSourceResult(t.Name())

	if t.cfg.APIKey == "" {
		res.ErrorMessage = "no API key configured (set TICKETMASTER_API_KEY)"
		return res, nil
	}

	params := url.Values{}
	params.Set("apikey", t.cfg.APIKey)
	params.Set("latlong", t.cfg.Lat+","+t.cfg.Lon)
	params.Set("radius", t.cfg.RadiusMi)
	params.Set("unit", "miles")
	params.Set("classificationName", "music")
	params.Set("startDateTime", start.Format("2006-01-02")+"T00:00:00Z")
	params.Set("endDateTime", end.AddDate(0, 0, -1).Format("2006-01-02")+"T23:59:59Z")
	params.Set("size", "100")
	params.Set("sort", "date,asc")

	body, err := t.getWithRetry(ctx, t.cfg.BaseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("discovery API request: %w", err)
	}

	var payload discoveryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing discovery response: %w", err)
	}

	res.EventsFound = len(payload.Embedded.Events)
	for _, raw := range payload.Embedded.Events {
		e := t.parseEvent(raw)
		if e == nil || !inWindow(e.Date, start, end) {
			continue
		}
		res.Events = append(res.Events, e)
	}
	return res, nil
}

// getWithRetry performs the GET with exponential backoff. 4xx responses
// are permanent; 5xx and transport errors retry up to MaxRetries.
func (t *Ticketmaster) getWithRetry(ctx context.Context, requestURL string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if ua := t.cfg.HTTP.UserAgent; ua != "" {
			req.Header.Set("User-Agent", ua)
		}

		resp, err := t.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode/100 == 4 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(fmt.Errorf("discovery API %d: %s", resp.StatusCode, strings.TrimSpace(string(b))))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("discovery API status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(t.cfg.MaxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

func (t *Ticketmaster) parseEvent(raw discoveryEvent) *event.Event {
	name := strings.TrimSpace(raw.Name)
	if name == "" || raw.Dates.Start.LocalDate == "" {
		return nil
	}
	date, err := time.Parse("2006-01-02", raw.Dates.Start.LocalDate)
	if err != nil {
		return nil
	}

	venueName := venue.UnknownVenue
	if len(raw.Embedded.Venues) > 0 && raw.Embedded.Venues[0].Name != "" {
		venueName = t.norm.Normalize(raw.Embedded.Venues[0].Name)
	}

	return &event.Event{
		Artist:   name,
		Venue:    venueName,
		Date:     event.Day(date),
		Time:     displayTime(raw.Dates.Start.LocalTime),
		Source:   t.Name(),
		URL:      raw.URL,
		RawTitle: raw.Name,
	}
}

// displayTime renders "19:30:00" as "7:30 PM" and "20:00:00" as "8 PM".
func displayTime(localTime string) string {
	if localTime == "" {
		return ""
	}
	t, err := time.Parse("15:04:05", localTime)
	if err != nil {
		return ""
	}
	if t.Minute() == 0 {
		return t.Format("3 PM")
	}
	return t.Format("3:04 PM")
}
