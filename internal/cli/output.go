package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rcallahan/memphis-shows/internal/pipeline"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteOutput writes the listing in the specified format.
func WriteOutput(w io.Writer, result *pipeline.RunResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *pipeline.RunResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText renders the listing day by day with the artist column
// aligned on display width, followed by a per-source status summary so
// degraded sources are visible next to the listing they degraded.
func writeText(w io.Writer, result *pipeline.RunResult, verbose bool) error {
	fmt.Fprintf(w, "MEMPHIS SHOWS — %s through %s\n",
		result.Start.Format("Jan 2"),
		result.End.AddDate(0, 0, -1).Format("Jan 2, 2006"))
	fmt.Fprintf(w, "%d show(s) from %d source(s)\n", len(result.Final), len(result.Sources))

	for _, day := range result.Days {
		fmt.Fprintf(w, "\n━━━ %s ━━━\n", strings.ToUpper(day.Label))
		if len(day.Events) == 0 {
			fmt.Fprintln(w, "  (nothing listed)")
			continue
		}

		artistWidth := 0
		for _, e := range day.Events {
			if w := runewidth.StringWidth(e.Artist); w > artistWidth {
				artistWidth = w
			}
		}

		for _, e := range day.Events {
			line := "  " + runewidth.FillRight(e.Artist, artistWidth) + "  " + e.Venue
			if e.Time != "" {
				line += " (" + e.Time + ")"
			}
			fmt.Fprintln(w, line)
			if verbose {
				if e.URL != "" {
					fmt.Fprintf(w, "      %s\n", e.URL)
				}
				fmt.Fprintf(w, "      via %s\n", e.Source)
			}
		}
	}

	fmt.Fprintln(w, "\nSOURCE NOTES")
	for _, sr := range result.Sources {
		fmt.Fprintf(w, "  %s\n", sr.StatusLine())
	}
	return nil
}

// runLog is the structured per-run record consumed for operational
// visibility: date range, counts, per-source outcome, final events.
type runLog struct {
	RunTimestamp string          `json:"run_timestamp"`
	DateRange    runLogRange     `json:"date_range"`
	TotalRaw     int             `json:"total_raw_events"`
	TotalFinal   int             `json:"total_final_events"`
	Sources      []runLogSource  `json:"sources"`
	Events       json.RawMessage `json:"events"`
}

type runLogRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type runLogSource struct {
	Name           string `json:"name"`
	Success        bool   `json:"success"`
	EventsFound    int    `json:"events_found"`
	EventsKept     int    `json:"events_kept"`
	EventsFiltered int    `json:"events_filtered"`
	Error          string `json:"error,omitempty"`
}

// WriteRunLog writes the run record as JSON.
func WriteRunLog(path string, result *pipeline.RunResult) error {
	events, err := json.Marshal(result.Final)
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	record := runLog{
		RunTimestamp: result.RunAt.Format("2006-01-02T15:04:05Z"),
		DateRange: runLogRange{
			Start: result.Start.Format("2006-01-02"),
			End:   result.End.AddDate(0, 0, -1).Format("2006-01-02"),
		},
		TotalRaw:   result.Raw,
		TotalFinal: len(result.Final),
		Events:     events,
	}
	for _, sr := range result.Sources {
		record.Sources = append(record.Sources, runLogSource{
			Name:           sr.SourceName,
			Success:        sr.Success,
			EventsFound:    sr.EventsFound,
			EventsKept:     len(sr.Events),
			EventsFiltered: sr.EventsFiltered,
			Error:          sr.ErrorMessage,
		})
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run log: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
