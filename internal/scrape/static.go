package scrape

import (
	"context"

	"liontalk/seminarworker/internal/seminar"
	apperrors "liontalk/seminarworker/pkg/errors"
)

// StaticBlockStrategy handles sites that render the whole seminar schedule
// inside one named content region. The region's inner markup becomes the
// extraction blob.
type StaticBlockStrategy struct {
	baseStrategy
}

// NewStaticBlockStrategy creates a new static-block strategy
func NewStaticBlockStrategy(cfg StrategyConfig) *StaticBlockStrategy {
	return &StaticBlockStrategy{baseStrategy: newBase("static-block", cfg)}
}

// Name implements Strategy
func (s *StaticBlockStrategy) Name() string {
	return "static-block"
}

// Acquire waits for the content region to attach and returns its filtered
// markup as an HTML blob.
func (s *StaticBlockStrategy) Acquire(ctx context.Context, src seminar.Source) (*seminar.RawContent, error) {
	page, err := s.newPage(ctx)
	if err != nil {
		return nil, apperrors.NewAcquisition(src.URL, "browser session failed", err)
	}
	defer page.Close()

	if err := page.Navigate(src.URL); err != nil {
		return nil, s.fail(page, src, "navigation", err)
	}
	if err := page.WaitReady(s.cfg.Filter.Container); err != nil {
		return nil, s.fail(page, src, "content region wait", err)
	}

	html, err := page.InnerHTML(s.cfg.Filter.Container)
	if err != nil {
		return nil, s.fail(page, src, "content read", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, apperrors.NewParsing(src.URL, "content region markup", err)
	}

	// The region is already narrowed; only noise stripping and the item cap
	// apply here.
	filtered, err := Filter(doc, FilterSpec{Item: s.cfg.Filter.Item, Noise: s.cfg.Filter.Noise}, s.cfg.ItemCap)
	if err != nil {
		return nil, apperrors.NewParsing(src.URL, "content filtering", err)
	}

	s.log.Debug().Str("url", src.URL).Int("bytes", len(filtered)).Msg("acquired static block")
	return seminar.BlobContent(filtered), nil
}
