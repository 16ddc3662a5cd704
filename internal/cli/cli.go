package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcallahan/memphis-shows/internal/cache"
	"github.com/rcallahan/memphis-shows/internal/calendar"
	"github.com/rcallahan/memphis-shows/internal/config"
	"github.com/rcallahan/memphis-shows/internal/logger"
	"github.com/rcallahan/memphis-shows/internal/notifier"
	"github.com/rcallahan/memphis-shows/internal/pipeline"
	"github.com/rcallahan/memphis-shows/internal/source"
	"github.com/rcallahan/memphis-shows/internal/venue"
)

const ExitError = 1

var (
	flagConfig  string
	flagDays    int
	flagFormat  string
	flagOutDir  string
	flagCache   string
	flagNoCache bool
	flagTweet   bool
	flagDryRun  bool
	flagVerbose bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memphis-shows",
		Short: "Aggregate Memphis concert listings from all configured sources",
		Long: `Fetches upcoming shows from venue calendars, the Ticketmaster API, and
the manual spreadsheet, removes duplicates and non-music events, and
prints one clean date-ordered listing for the coming week.`,
		RunE: runAggregate,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config (built-in defaults if omitted)")
	cmd.Flags().IntVar(&flagDays, "days", 0, "Override listing window length in days")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", "", "Directory for run artifacts (run log, ICS feed)")
	cmd.Flags().StringVar(&flagCache, "cache", "", "Source cache file (overrides config)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Fetch every source fresh")
	cmd.Flags().BoolVar(&flagTweet, "tweet", false, "Post tomorrow's digest to Twitter")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the digest instead of posting")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

func runAggregate(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagDays > 0 {
		cfg.WindowDays = flagDays
	}
	if flagCache != "" {
		cfg.CachePath = flagCache
	}
	if flagNoCache {
		cfg.CachePath = ""
	}

	norm := venue.NewNormalizer(cfg.AliasMap())
	sources := source.Registry(cfg, norm)
	store := cache.Load(cfg.CachePath)

	p := pipeline.New(cfg, norm, sources, store)
	result, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	// Writing the published output is the only fatal step: a run that
	// produced nothing usable must not exit zero.
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	if flagOutDir != "" {
		if err := writeArtifacts(flagOutDir, result); err != nil {
			return err
		}
	}

	if flagTweet || flagDryRun {
		if err := notify(result); err != nil {
			// Notification is downstream of publishing; log and move on.
			logger.Error("notification failed", nil, err)
		}
	}

	return nil
}

// writeArtifacts persists the run log and the ICS feed.
func writeArtifacts(dir string, result *pipeline.RunResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	logPath := dir + "/run_log.json"
	if err := WriteRunLog(logPath, result); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}

	icsPath := dir + "/shows.ics"
	ics := calendar.GenerateICS(result.Final, result.RunAt)
	if err := os.WriteFile(icsPath, []byte(ics), 0644); err != nil {
		return fmt.Errorf("writing ICS feed: %w", err)
	}

	logger.Info("artifacts written", logger.Fields{"run_log": logPath, "ics": icsPath})
	return nil
}

// notify posts the first day's digest: the listing starts tomorrow, so
// the first bucket is the next show night.
func notify(result *pipeline.RunResult) error {
	if len(result.Days) == 0 {
		return nil
	}

	var n notifier.Notifier
	if flagDryRun {
		n = notifier.NewDryRunNotifier(os.Stderr)
	} else {
		tw, err := notifier.NewTwitterNotifier()
		if err != nil {
			return err
		}
		n = tw
	}
	return n.Notify(result.Days[0])
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
