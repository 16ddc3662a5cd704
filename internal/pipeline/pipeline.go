// Package pipeline drives one aggregation run: fetch every registered
// source with failure isolation, normalize and classify the candidates,
// deduplicate the union, and bucket the survivors by day.
//
// Sources run concurrently up to a configured bound, each under its own
// timeout. Arrival order never affects output: results are collected by
// registry position and the deduplicator and formatter both sort before
// returning.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rcallahan/memphis-shows/internal/cache"
	"github.com/rcallahan/memphis-shows/internal/classify"
	"github.com/rcallahan/memphis-shows/internal/config"
	"github.com/rcallahan/memphis-shows/internal/dedup"
	"github.com/rcallahan/memphis-shows/internal/event"
	"github.com/rcallahan/memphis-shows/internal/format"
	"github.com/rcallahan/memphis-shows/internal/logger"
	"github.com/rcallahan/memphis-shows/internal/source"
	"github.com/rcallahan/memphis-shows/internal/venue"
)

// RunResult is everything one run produced, handed to the output layer.
type RunResult struct {
	RunAt   time.Time             `json:"run_timestamp"`
	Start   time.Time             `json:"start_date"`
	End     time.Time             `json:"end_date"` // exclusive
	Sources []*event.SourceResult `json:"sources"`
	Raw     int                   `json:"total_raw_events"`
	Final   []*event.Event        `json:"events"`
	Days    []format.DayBucket    `json:"days"`
}

// Pipeline owns every Event and SourceResult for the duration of a run.
type Pipeline struct {
	cfg        *config.Config
	norm       *venue.Normalizer
	classifier *classify.Classifier
	sources    []source.Source
	cache      *cache.Cache
	metrics    *logger.Metrics

	// now is swappable for tests.
	now func() time.Time
}

// New assembles a pipeline over the given source registry.
func New(cfg *config.Config, norm *venue.Normalizer, sources []source.Source, c *cache.Cache) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		norm:       norm,
		classifier: classify.New(cfg),
		sources:    sources,
		cache:      c,
		metrics:    logger.NewMetrics(),
		now:        time.Now,
	}
}

// Run executes one full aggregation pass. The error return covers only
// internal invariant failures; individual source failures are recorded
// in the result, and an empty listing is still a publishable listing.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	runAt := p.now().UTC()
	start, end := p.cfg.Window(runAt)

	logger.Info("run starting", logger.Fields{
		"start":   start.Format("2006-01-02"),
		"end":     end.AddDate(0, 0, -1).Format("2006-01-02"),
		"sources": len(p.sources),
	})

	results := p.fetchAll(ctx, runAt, start, end)

	// Normalize venues and classify. Adapters already normalize what they
	// can; this pass guarantees the invariant for every candidate.
	var all []*event.Event
	raw := 0
	for _, res := range results {
		for _, e := range res.Events {
			e.Venue = p.norm.Normalize(e.Venue)
		}
		kept, removed := p.classifier.Filter(res.Events)
		res.Events = kept
		res.EventsFiltered += removed
		raw += res.EventsFound
		all = append(all, kept...)
	}
	p.metrics.Add("events.raw", int64(raw))
	p.metrics.Add("events.candidates", int64(len(all)))

	final := dedup.Deduplicate(all)
	p.metrics.Add("events.final", int64(len(final)))

	p.reportFailures(results)

	if p.cache != nil {
		if err := p.cache.Save(runAt); err != nil {
			// Cache persistence is an optimization, not an output.
			logger.Warn("cache save failed", logger.Fields{"reason": err.Error()})
		}
	}

	logger.Info("run finished", p.metrics.Snapshot())

	return &RunResult{
		RunAt:   runAt,
		Start:   start,
		End:     end,
		Sources: results,
		Raw:     raw,
		Final:   final,
		Days:    format.ByDate(final, start, end),
	}, nil
}

// fetchAll runs every source under the concurrency bound, reusing
// same-day cached results where allowed. The returned slice preserves
// registry order regardless of completion order.
func (p *Pipeline) fetchAll(ctx context.Context, runAt, start, end time.Time) []*event.SourceResult {
	results := make([]*event.SourceResult, len(p.sources))

	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.MaxConcurrent)

	for i, src := range p.sources {
		if p.cache != nil && src.Cacheable() && p.cache.FreshToday(src.Name(), runAt) {
			results[i] = p.cache.Result(src.Name(), start, end)
			logger.Info("using cached result", logger.Fields{"source": src.Name()})
			continue
		}

		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = p.fetchOne(ctx, src, start, end)
		}(i, src)
	}
	wg.Wait()

	for i, res := range results {
		src := p.sources[i]
		if p.cache != nil && src.Cacheable() {
			p.cache.Store(res, runAt)
		}
		logger.Info("source done", logger.Fields{"status": res.StatusLine()})
	}
	return results
}

// fetchOne wraps a single adapter call: per-call timeout, error-to-result
// conversion, and panic recovery. A misbehaving adapter can never abort
// the run.
func (p *Pipeline) fetchOne(ctx context.Context, src source.Source, start, end time.Time) (res *event.SourceResult) {
	defer func() {
		if r := recover(); r != nil {
			res = event.Failed(src.Name(), fmt.Errorf("adapter panic: %v", r))
		}
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.FetchTimeout.Std())
	defer cancel()

	began := p.now()
	fetched, err := src.Fetch(fetchCtx, start, end)
	p.metrics.RecordTiming("fetch."+src.Name(), p.now().Sub(began))

	if err != nil {
		logger.Warn("source failed", logger.Fields{"source": src.Name(), "reason": err.Error()})
		return event.Failed(src.Name(), err)
	}
	if fetched == nil {
		return event.Failed(src.Name(), fmt.Errorf("adapter returned no result"))
	}
	return fetched
}

// reportFailures logs degraded sources. A run where every source failed
// and nothing came in manually is reported loudly but still publishes.
func (p *Pipeline) reportFailures(results []*event.SourceResult) {
	failed := 0
	manualEvents := 0
	for _, res := range results {
		if !res.Success {
			failed++
		} else if len(res.Events) > 0 && res.EventsFound > 0 && isManual(res.SourceName) {
			manualEvents += len(res.Events)
		}
	}

	if failed == len(results) && manualEvents == 0 {
		logger.Error("every source failed and no manual entries exist", logger.Fields{
			"sources": len(results),
		}, nil)
		return
	}
	if failed > 0 {
		logger.Warn("some sources degraded", logger.Fields{"failed": failed, "total": len(results)})
	}
}

func isManual(sourceName string) bool {
	return len(sourceName) >= 6 && sourceName[:6] == "Manual"
}
