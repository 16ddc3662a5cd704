package notifier

import (
	"fmt"
	"strings"

	"github.com/rcallahan/memphis-shows/internal/format"
)

const tweetLimit = 280

// formatDigest renders one day's shows as a single post. Shows are
// listed in bucket order (timed first) until the character limit cuts
// it off.
func formatDigest(day format.DayBucket) string {
	if len(day.Events) == 0 {
		return ""
	}

	header := fmt.Sprintf("Live music in Memphis — %s:\n", day.Label)
	footer := "\n#MemphisMusic"

	var lines []string
	for _, e := range day.Events {
		line := "• " + e.Artist + " at " + e.Venue
		if e.Time != "" {
			line += " (" + e.Time + ")"
		}
		lines = append(lines, line)
	}

	post := header + strings.Join(lines, "\n") + footer
	for len([]rune(post)) > tweetLimit && len(lines) > 1 {
		lines = lines[:len(lines)-1]
		more := fmt.Sprintf("\n…and %d more", len(day.Events)-len(lines))
		post = header + strings.Join(lines, "\n") + more + footer
	}
	if len([]rune(post)) > tweetLimit {
		runes := []rune(post)
		post = string(runes[:tweetLimit-1]) + "…"
	}
	return post
}
