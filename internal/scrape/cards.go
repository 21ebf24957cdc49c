package scrape

import (
	"context"

	"liontalk/seminarworker/internal/seminar"
	apperrors "liontalk/seminarworker/pkg/errors"
)

// CardListStrategy handles client-rendered sites that paint each event as a
// repeated card element. It waits for the cards to render, then ships only
// the cap-limited subset downstream as a rebuilt minimal container.
type CardListStrategy struct {
	baseStrategy
}

// NewCardListStrategy creates a new card-list strategy
func NewCardListStrategy(cfg StrategyConfig) *CardListStrategy {
	return &CardListStrategy{baseStrategy: newBase("card-list", cfg)}
}

// Name implements Strategy
func (s *CardListStrategy) Name() string {
	return "card-list"
}

// Acquire waits for the card elements to render and returns the capped
// card subset as an HTML blob.
func (s *CardListStrategy) Acquire(ctx context.Context, src seminar.Source) (*seminar.RawContent, error) {
	page, err := s.newPage(ctx)
	if err != nil {
		return nil, apperrors.NewAcquisition(src.URL, "browser session failed", err)
	}
	defer page.Close()

	if err := page.Navigate(src.URL); err != nil {
		return nil, s.fail(page, src, "navigation", err)
	}
	if err := page.WaitReady(s.cfg.Filter.Item); err != nil {
		return nil, s.fail(page, src, "card render wait", err)
	}

	html, err := page.Content()
	if err != nil {
		return nil, s.fail(page, src, "content read", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, apperrors.NewParsing(src.URL, "rendered page markup", err)
	}

	filtered, err := Filter(doc, s.cfg.Filter, s.cfg.ItemCap)
	if err != nil {
		return nil, apperrors.NewParsing(src.URL, "card filtering", err)
	}

	s.log.Debug().Str("url", src.URL).Int("bytes", len(filtered)).Msg("acquired card list")
	return seminar.BlobContent(filtered), nil
}
