package notifier

import (
	"fmt"
	"os"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/rcallahan/memphis-shows/internal/format"
)

// TwitterNotifier posts the day's listing digest to Twitter.
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a Twitter notifier from environment
// variables: TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN,
// TWITTER_ACCESS_SECRET.
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &TwitterNotifier{client: twitter.NewClient(httpClient)}, nil
}

// Notify posts one digest tweet for the day. Days with no shows post
// nothing.
func (n *TwitterNotifier) Notify(day format.DayBucket) error {
	digest := formatDigest(day)
	if digest == "" {
		return nil
	}

	if _, _, err := n.client.Statuses.Update(digest, nil); err != nil {
		return fmt.Errorf("posting digest for %s: %w", day.Label, err)
	}
	return nil
}
