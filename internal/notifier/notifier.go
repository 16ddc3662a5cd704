package notifier

import (
	"github.com/rcallahan/memphis-shows/internal/format"
)

// Notifier posts a digest of a day's listing to a social channel.
type Notifier interface {
	// Notify posts a digest for the given day bucket.
	Notify(day format.DayBucket) error
}
