package config

import "time"

// Default returns the built-in configuration: the curated Memphis venue
// registry and the keyword sets the classifier runs on. A YAML file can
// replace any of it wholesale.
func Default() *Config {
	return &Config{
		WindowDays:    7,
		MaxConcurrent: 4,
		FetchTimeout:  Duration(30 * time.Second),
		CachePath:     "source_cache.json",

		TrustedSourcePrefixes: []string{"Manual"},
		MusicScopedSources:    []string{"Ticketmaster", "Bandsintown", "DICE"},

		Ticketmaster: TicketmasterConfig{
			BaseURL:    "https://app.ticketmaster.com/discovery/v2/events.json",
			Lat:        "35.1495",
			Lon:        "-90.0490",
			RadiusMi:   "30",
			MaxRetries: 3,
			HTTP: HTTPConfig{
				Timeout:   Duration(15 * time.Second),
				UserAgent: "memphis-shows/1.0 (github.com/rcallahan/memphis-shows)",
			},
		},
		Manual: ManualConfig{
			LocalCSVPath: "manual_events.csv",
			HTTP: HTTPConfig{
				Timeout: Duration(10 * time.Second),
			},
		},

		Venues: []Venue{
			{
				Name:        "Hi Tone",
				Aliases:     []string{"hi tone", "hi-tone", "hi tone café", "hi tone cafe", "the hi-tone"},
				CalendarURL: "https://www.hitonememphis.com/events",
				Scraper:     "site",
				MusicOnly:   true,
			},
			{
				Name:        "Minglewood Hall",
				Aliases:     []string{"minglewood", "minglewood hall", "1555 madison"},
				CalendarURL: "https://www.minglewoodhall.com/events",
				Scraper:     "site",
				MusicOnly:   true,
			},
			{
				Name:        "Growlers",
				Aliases:     []string{"growlers", "growlers memphis"},
				CalendarURL: "https://www.growlersmemphis.com/events",
				Scraper:     "site",
				MusicOnly:   true,
			},
			{
				Name:        "Hernando's Hideaway",
				Aliases:     []string{"hernandos", "hernando's", "hernandos hideaway", "hernando's hideaway"},
				CalendarURL: "https://www.hernandoshideaway.com",
				Scraper:     "site",
				MusicOnly:   true,
			},
			{
				Name:        "Lafayette's Music Room",
				Aliases:     []string{"lafayettes", "lafayette's", "lafayettes music room", "lafayette's music room"},
				CalendarURL: "https://www.lafayettes.com/music",
				Scraper:     "site",
				MusicOnly:   true,
			},
			{
				Name:        "B.B. King's Blues Club",
				Aliases:     []string{"bb kings", "b.b. kings", "b.b. king's", "bb king's blues club"},
				CalendarURL: "https://www.bbkings.com/memphis",
				Scraper:     "site",
				MusicOnly:   true,
			},
			{
				Name:        "Graceland Soundstage",
				Aliases:     []string{"graceland soundstage", "graceland live", "guest house theater"},
				CalendarURL: "https://www.graceland.com/entertainment",
				Scraper:     "site",
				MusicOnly:   true,
			},
			{
				Name:        "Crosstown Arts",
				Aliases:     []string{"crosstown arts", "the green room", "green room crosstown", "crosstown concourse"},
				CalendarURL: "https://www.crosstownarts.org/events",
				Scraper:     "site",
				Mixed:       true,
			},
			{
				Name:        "Overton Park Shell",
				Aliases:     []string{"levitt shell", "overton park shell", "the shell"},
				CalendarURL: "https://www.levittshell.org/events",
				Scraper:     "site",
				Mixed:       true,
			},
			{
				Name:        "FedExForum",
				Aliases:     []string{"fedexforum", "fedex forum"},
				CalendarURL: "https://www.fedexforum.com/events",
				Scraper:     "site",
				Mixed:       true,
			},
			{
				Name:    "Germantown Performing Arts Center",
				Aliases: []string{"germantown performing arts", "gpac"},
				Scraper: "manual_only",
				Mixed:   true,
			},
			{
				// Instagram only, no calendar page to scrape.
				Name:      "Bar DKDC",
				Aliases:   []string{"bar dkdc", "dkdc"},
				Scraper:   "manual_only",
				MusicOnly: true,
			},
			{
				Name:      "B-Side Memphis",
				Aliases:   []string{"b-side", "bside", "b side", "b-side memphis"},
				Scraper:   "manual_only",
				MusicOnly: true,
			},
		},

		NonMusicKeywords: []string{
			"comedy", "stand-up", "standup", "stand up", "comedian",
			"theatre", "theater", "broadway",
			"art opening", "art show", "gallery opening", "exhibition",
			"poetry reading", "spoken word", "book signing", "book reading",
			"trivia", "bingo", "game night",
			"drag brunch",
			"networking", "mixer",
			"yoga", "fitness", "wellness", "meditation",
			"film screening", "movie night",
			"paint and sip", "paint night", "craft night",
			"food truck", "farmers market",
		},

		MusicKeywords: []string{
			"concert", "live music", "live band", "band", "dj",
			"dance night", "electronic", "edm", "hip hop", "hip-hop",
			"r&b", "soul", "blues", "jazz", "rock", "punk", "metal",
			"country", "folk", "indie", "reggae", "gospel", "funk",
			"singer", "songwriter", "rapper", "feat.", "featuring",
			"tour", "album release", "record release",
			"house music", "techno", "disco",
			"open mic", "jam session", "jam night",
			"karaoke",
		},
	}
}
