// Package pipeline runs the batch: it dispatches each configured source to
// its acquisition strategy, hands the raw content to the extraction adapter
// and aggregates the per-source records into the ordered output collection.
package pipeline

import (
	"context"

	"liontalk/seminarworker/internal/scrape"
	"liontalk/seminarworker/internal/seminar"
	"liontalk/seminarworker/logger"
	apperrors "liontalk/seminarworker/pkg/errors"
)

// Extractor converts raw acquisition output into a seminar record.
type Extractor interface {
	Extract(ctx context.Context, content *seminar.RawContent, department, series string) (*seminar.Record, error)
}

// Pipeline orchestrates the per-source state machine. Sources are processed
// sequentially in configuration order; every per-source failure is isolated
// and reported, never aborting the batch.
type Pipeline struct {
	strategies map[seminar.StrategyID]scrape.Strategy
	extractor  Extractor
	log        *logger.Logger
}

// New creates a new pipeline
func New(strategies map[seminar.StrategyID]scrape.Strategy, extractor Extractor) *Pipeline {
	return &Pipeline{
		strategies: strategies,
		extractor:  extractor,
		log:        logger.ForPipeline(),
	}
}

// Run processes all sources and returns the output collection: one record per
// successful source, in configuration-row order. Failed sources contribute no
// record; the logs carry the diagnosis.
func (p *Pipeline) Run(ctx context.Context, sources []seminar.Source) []seminar.Record {
	records := make([]seminar.Record, 0, len(sources))

	for _, src := range sources {
		if ctx.Err() != nil {
			p.log.Warn().Err(ctx.Err()).Msg("batch interrupted")
			break
		}

		record, err := p.processSource(ctx, src)
		if err != nil {
			p.log.Error().
				Err(err).
				Str("url", src.URL).
				Str("strategy", src.Strategy.String()).
				Str("error_type", string(apperrors.TypeOf(err))).
				Msg("source failed, skipping")
			continue
		}

		records = append(records, *record)
	}

	p.log.Info().
		Int("sources", len(sources)).
		Int("records", len(records)).
		Msg("batch complete")

	return records
}

// processSource walks one source through acquiring and extracting.
func (p *Pipeline) processSource(ctx context.Context, src seminar.Source) (*seminar.Record, error) {
	strategy, ok := p.strategies[src.Strategy]
	if !ok {
		return nil, apperrors.NewUnknownStrategy(src.URL, "no strategy for scrape method")
	}

	p.log.Info().
		Str("url", src.URL).
		Str("department", src.Department).
		Str("strategy", strategy.Name()).
		Msg("acquiring source")

	content, err := strategy.Acquire(ctx, src)
	if err != nil {
		return nil, err
	}

	return p.extractor.Extract(ctx, content, src.Department, src.Series)
}
