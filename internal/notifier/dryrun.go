package notifier

import (
	"fmt"
	"io"

	"github.com/rcallahan/memphis-shows/internal/format"
)

// DryRunNotifier writes the digest that would be posted without posting.
type DryRunNotifier struct {
	Out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out.
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{Out: out}
}

// Notify prints the digest for the day.
func (n *DryRunNotifier) Notify(day format.DayBucket) error {
	digest := formatDigest(day)
	if digest == "" {
		fmt.Fprintf(n.Out, "--- No shows on %s, nothing to post ---\n", day.Label)
		return nil
	}
	fmt.Fprintf(n.Out, "--- Digest for %s ---\n%s\n(Length: %d characters)\n\n",
		day.Label, digest, len([]rune(digest)))
	return nil
}
