package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rcallahan/memphis-shows/internal/config"
	"github.com/rcallahan/memphis-shows/internal/event"
	"github.com/rcallahan/memphis-shows/internal/venue"
)

// Manual reads operator-entered events from a published spreadsheet CSV,
// falling back to a local CSV file. It is the catch-all for
// Instagram-only venues, pop-up shows, and anything the automated
// sources miss; a human already vetted every row.
type Manual struct {
	cfg    config.ManualConfig
	norm   *venue.Normalizer
	client *http.Client
}

// NewManual creates the manual-entry source.
func NewManual(cfg *config.Config, norm *venue.Normalizer) *Manual {
	timeout := cfg.Manual.HTTP.Timeout.Std()
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Manual{
		cfg:    cfg.Manual,
		norm:   norm,
		client: &http.Client{Timeout: timeout},
	}
}

func (m *Manual) Name() string { return "Manual (Google Sheet)" }

// Cacheable is false: manual entries change frequently and cost one GET.
func (m *Manual) Cacheable() bool { return false }

// Fetch reads the sheet CSV (or local fallback) and parses its rows.
// Rows missing an artist or a parseable date are silently skipped; only
// a wholly unreadable CSV fails the source.
func (m *Manual) Fetch(ctx context.Context, start, end time.Time) (*event.SourceResult, error) {
	res := event.NewSourceResult(m.Name())

	csvText, sourceName, note := m.readCSV(ctx)
	label := m.Name()
	if sourceName != "" {
		res.SourceName = sourceName
		label = sourceName
	}
	if csvText == "" {
		// Not configured is not a failure; the run proceeds without
		// manual entries and the status line says why.
		if note == "" {
			note = "no sheet URL or local CSV configured"
		}
		res.ErrorMessage = note
		return res, nil
	}
	if note != "" {
		res.ErrorMessage = note
	}

	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	cols := headerIndex(header)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// One bad row never aborts the sheet.
			continue
		}
		e := m.parseRow(row, cols, start, label)
		if e == nil {
			continue
		}
		// EventsFound counts every parsed row, like the other adapters;
		// the window filter decides what ships.
		res.EventsFound++
		if inWindow(e.Date, start, end) {
			res.Events = append(res.Events, e)
		}
	}

	if len(res.Events) == 0 && res.ErrorMessage == "" {
		res.ErrorMessage = "CSV accessible but no events in date range"
	}
	return res, nil
}

// readCSV returns the CSV text, the effective source name, and an
// informational note. Empty text means unconfigured or unreachable.
func (m *Manual) readCSV(ctx context.Context) (text, sourceName, note string) {
	if m.cfg.SheetCSVURL != "" {
		body, err := m.get(ctx, m.cfg.SheetCSVURL)
		if err == nil {
			return body, "", ""
		}
		note = fmt.Sprintf("sheet URL failed (%.60s), trying local CSV", err.Error())
	}

	if m.cfg.LocalCSVPath != "" {
		b, err := os.ReadFile(m.cfg.LocalCSVPath)
		if err == nil {
			return string(b), "Manual (local CSV)", note
		}
	}
	return "", "", note
}

func (m *Manual) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// headerIndex maps flexible, case-insensitive column names to indices.
func headerIndex(header []string) map[string]int {
	aliases := map[string]string{
		"date": "date", "event_date": "date", "event date": "date",
		"artist": "artist", "event": "artist", "act": "artist",
		"name": "artist", "artist/event": "artist",
		"venue": "venue", "location": "venue", "place": "venue",
		"time": "time", "showtime": "time", "doors": "time", "show time": "time",
		"source_note": "note", "source": "note", "notes": "note", "note": "note",
	}
	cols := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := aliases[key]; ok {
			if _, taken := cols[canonical]; !taken {
				cols[canonical] = i
			}
		}
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseRow converts one sheet row into an Event, or nil when the row
// lacks an artist or a parseable date.
func (m *Manual) parseRow(row []string, cols map[string]int, ref time.Time, label string) *event.Event {
	dateStr := field(row, cols, "date")
	artist := field(row, cols, "artist")
	if dateStr == "" || artist == "" {
		return nil
	}

	date, ok := event.ParseDate(dateStr, ref)
	if !ok {
		return nil
	}

	src := label
	if note := field(row, cols, "note"); note != "" {
		src = "Manual (" + note + ")"
	}

	venueName := "Venue TBA"
	if v := field(row, cols, "venue"); v != "" {
		venueName = m.norm.Normalize(v)
	}

	return &event.Event{
		Artist: artist,
		Venue:  venueName,
		Date:   date,
		Time:   field(row, cols, "time"),
		Source: src,
	}
}
