package scrape

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"liontalk/seminarworker/helpers"
	"liontalk/seminarworker/internal/seminar"
	apperrors "liontalk/seminarworker/pkg/errors"
	"liontalk/seminarworker/services/cache"
)

// plainGuardTTL is how long a host that rate-limited us stays blocked.
const plainGuardTTL = 500 * time.Second

// PlainFetchStrategy handles server-rendered pages that need no browser: a
// plain HTTP GET with browser-like headers, charset-normalized, then content
// filtered. A memcache-backed guard skips hosts that recently rate-limited
// us.
type PlainFetchStrategy struct {
	baseStrategy
	cacheSvc cache.CacheService
	fetch    func(url string) (io.Reader, error) // test hook
}

// NewPlainFetchStrategy creates a new plain-fetch strategy
func NewPlainFetchStrategy(cfg StrategyConfig, cacheSvc cache.CacheService) *PlainFetchStrategy {
	return &PlainFetchStrategy{
		baseStrategy: newBase("plain-fetch", cfg),
		cacheSvc:     cacheSvc,
		fetch:        helpers.FetchWithBrowserHeaders,
	}
}

// Name implements Strategy
func (s *PlainFetchStrategy) Name() string {
	return "plain-fetch"
}

// Acquire fetches the page over plain HTTP and returns the filtered blob.
func (s *PlainFetchStrategy) Acquire(ctx context.Context, src seminar.Source) (*seminar.RawContent, error) {
	guardKey, err := hostGuardKey(src.URL)
	if err != nil {
		return nil, apperrors.NewAcquisition(src.URL, "invalid source URL", err)
	}

	if s.cacheSvc != nil {
		if _, err := s.cacheSvc.Get(guardKey); err == nil {
			return nil, apperrors.NewAcquisition(src.URL, "request guard active for host", nil)
		}
	}

	body, err := s.fetch(src.URL)
	if err != nil {
		if s.cacheSvc != nil && strings.HasPrefix(err.Error(), "rate limited") {
			if setErr := s.cacheSvc.Set(guardKey, []byte(fmt.Sprintf("%d", plainGuardTTL/time.Second)), plainGuardTTL); setErr != nil {
				s.log.Warn().Err(setErr).Msg("failed to set request guard")
			}
		}
		return nil, apperrors.NewAcquisition(src.URL, "fetch failed", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, apperrors.NewParsing(src.URL, "page markup", err)
	}

	filtered, err := Filter(doc, s.cfg.Filter, s.cfg.ItemCap)
	if err != nil {
		return nil, apperrors.NewParsing(src.URL, "content filtering", err)
	}

	s.log.Debug().Str("url", src.URL).Int("bytes", len(filtered)).Msg("acquired plain page")
	return seminar.BlobContent(filtered), nil
}

func hostGuardKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("no host in URL %q", rawURL)
	}
	return u.Host + "_fetch_guard", nil
}
