package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML as either a Go
// duration string ("30s", "1m30s") or a bare integer number of seconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var secs int64
	if err := value.Decode(&secs); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Venue describes one venue in the registry: its canonical display name,
// the informal spellings seen in feeds, and how (or whether) its own
// calendar page is scraped.
type Venue struct {
	Name        string   `yaml:"name"`
	Aliases     []string `yaml:"aliases"`
	CalendarURL string   `yaml:"calendar_url"`
	Scraper     string   `yaml:"scraper"` // "site" or "manual_only"
	MusicOnly   bool     `yaml:"music_only"`
	Mixed       bool     `yaml:"mixed"`
}

// HTTPConfig holds shared HTTP client settings for source adapters.
type HTTPConfig struct {
	Timeout   Duration `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent"`
}

// TicketmasterConfig configures the Discovery API source.
// APIKey may be left empty in the file and supplied via the
// TICKETMASTER_API_KEY environment variable.
type TicketmasterConfig struct {
	APIKey     string     `yaml:"api_key"`
	BaseURL    string     `yaml:"base_url"`
	Lat        string     `yaml:"lat"`
	Lon        string     `yaml:"lon"`
	RadiusMi   string     `yaml:"radius_mi"`
	MaxRetries int        `yaml:"max_retries"`
	HTTP       HTTPConfig `yaml:"http"`
}

// ManualConfig configures the operator-entered events source: a published
// spreadsheet CSV URL with a local CSV file fallback. The URL may also be
// supplied via the SHEET_CSV_URL environment variable.
type ManualConfig struct {
	SheetCSVURL  string     `yaml:"sheet_csv_url"`
	LocalCSVPath string     `yaml:"local_csv_path"`
	HTTP         HTTPConfig `yaml:"http"`
}

// Config is the single process-wide configuration object. It is loaded
// once at startup and read-only afterwards.
type Config struct {
	// WindowDays is the length of the published window. The window starts
	// the day after the run and spans WindowDays calendar days.
	WindowDays int `yaml:"window_days"`

	// MaxConcurrent bounds how many source fetches run at once.
	MaxConcurrent int `yaml:"max_concurrent"`

	// FetchTimeout bounds each individual source fetch.
	FetchTimeout Duration `yaml:"fetch_timeout"`

	// CachePath is the same-day source cache file. Empty disables caching.
	CachePath string `yaml:"cache_path"`

	Venues []Venue `yaml:"venues"`

	// MusicKeywords confirm an event is music; NonMusicKeywords mark it as
	// something else unless a music keyword also appears.
	MusicKeywords    []string `yaml:"music_keywords"`
	NonMusicKeywords []string `yaml:"non_music_keywords"`

	// TrustedSourcePrefixes name provenance channels whose entries are
	// human-curated and accepted without classification.
	TrustedSourcePrefixes []string `yaml:"trusted_source_prefixes"`

	// MusicScopedSources name channels whose upstream query is already
	// restricted to a music category.
	MusicScopedSources []string `yaml:"music_scoped_sources"`

	Ticketmaster TicketmasterConfig `yaml:"ticketmaster"`
	Manual       ManualConfig       `yaml:"manual"`
}

// Load reads a YAML config file over the compiled-in defaults. A missing
// path returns the defaults unchanged. Environment variables override
// credentials so they stay out of checked-in files.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				cfg.applyEnv()
				return cfg, nil
			}
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TICKETMASTER_API_KEY"); v != "" {
		c.Ticketmaster.APIKey = v
	}
	if v := os.Getenv("SHEET_CSV_URL"); v != "" {
		c.Manual.SheetCSVURL = v
	}
}

func (c *Config) validate() error {
	if c.WindowDays <= 0 {
		return fmt.Errorf("window_days must be positive, got %d", c.WindowDays)
	}
	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("max_concurrent must be positive, got %d", c.MaxConcurrent)
	}
	seen := make(map[string]bool, len(c.Venues))
	for _, v := range c.Venues {
		if v.Name == "" {
			return fmt.Errorf("venue with empty name in config")
		}
		key := strings.ToLower(v.Name)
		if seen[key] {
			return fmt.Errorf("duplicate venue %q in config", v.Name)
		}
		seen[key] = true
	}
	return nil
}

// Window computes the published date range [start, end) relative to now:
// the day after the run through WindowDays days.
func (c *Config) Window(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return start, start.AddDate(0, 0, c.WindowDays)
}

// AliasMap builds the lowercase alias → canonical name table from the
// venue registry. Canonical names map to themselves.
func (c *Config) AliasMap() map[string]string {
	m := make(map[string]string)
	for _, v := range c.Venues {
		m[strings.ToLower(v.Name)] = v.Name
		for _, alias := range v.Aliases {
			m[strings.ToLower(strings.TrimSpace(alias))] = v.Name
		}
	}
	return m
}

// MusicOnlyVenues returns the set of canonical names that host nothing
// but music programming.
func (c *Config) MusicOnlyVenues() map[string]bool {
	m := make(map[string]bool)
	for _, v := range c.Venues {
		if v.MusicOnly {
			m[v.Name] = true
		}
	}
	return m
}

// MixedVenues returns the set of canonical names that host both music and
// non-music programming.
func (c *Config) MixedVenues() map[string]bool {
	m := make(map[string]bool)
	for _, v := range c.Venues {
		if v.Mixed {
			m[v.Name] = true
		}
	}
	return m
}
