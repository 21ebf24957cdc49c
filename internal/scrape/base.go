package scrape

import (
	"context"
	"fmt"
	"time"

	"liontalk/seminarworker/internal/seminar"
	"liontalk/seminarworker/logger"
	apperrors "liontalk/seminarworker/pkg/errors"
)

// baseStrategy provides common functionality for the browser-driven
// strategies: session creation, failure wrapping with a diagnostic
// screenshot, and the window clock.
type baseStrategy struct {
	cfg StrategyConfig
	log *logger.Logger
}

func newBase(name string, cfg StrategyConfig) baseStrategy {
	return baseStrategy{cfg: cfg, log: logger.ForStrategy(name)}
}

func (b *baseStrategy) newPage(ctx context.Context) (Page, error) {
	if b.cfg.Pages == nil {
		return nil, fmt.Errorf("no page factory configured")
	}
	return b.cfg.Pages(ctx)
}

// fail converts a navigation/wait/read failure into an acquisition error for
// this source, writing a diagnostic screenshot first when a page is live.
func (b *baseStrategy) fail(page Page, src seminar.Source, stage string, err error) error {
	if page != nil && b.cfg.ScreenshotPath != "" {
		if shotErr := page.Screenshot(b.cfg.ScreenshotPath); shotErr != nil {
			b.log.Debug().Err(shotErr).Msg("diagnostic screenshot failed")
		} else {
			b.log.Info().Str("path", b.cfg.ScreenshotPath).Msg("diagnostic screenshot written")
		}
	}
	return apperrors.NewAcquisition(src.URL, stage+" failed", err)
}

func (b *baseStrategy) now() time.Time {
	if b.cfg.Now != nil {
		return b.cfg.Now()
	}
	return time.Now()
}
