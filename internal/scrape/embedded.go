package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"liontalk/seminarworker/internal/seminar"
	apperrors "liontalk/seminarworker/pkg/errors"
)

// item keys recognized in embedded event blobs, by precedence
var (
	embeddedTitleKeys = []string{"title", "name", "seminar_title"}
	embeddedStartKeys = []string{"start", "start_time", "startDate", "datetime", "date"}
	embeddedURLKeys   = []string{"url", "link", "href"}

	embeddedTimeLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// EmbeddedDataStrategy handles sites that ship their event calendar as a
// JSON assignment inside an inline script tag. When the assignment pattern
// matches, the parsed items bypass the HTML blob path entirely; when it does
// not, the raw page is returned as a blob so extraction still has a chance.
type EmbeddedDataStrategy struct {
	baseStrategy
	pattern *regexp.Regexp
}

// NewEmbeddedDataStrategy creates a new embedded-data strategy. The script
// pattern must contain one capture group holding the JSON array.
func NewEmbeddedDataStrategy(cfg StrategyConfig) *EmbeddedDataStrategy {
	return &EmbeddedDataStrategy{
		baseStrategy: newBase("embedded-data", cfg),
		pattern:      regexp.MustCompile(cfg.ScriptPattern),
	}
}

// Name implements Strategy
func (s *EmbeddedDataStrategy) Name() string {
	return "embedded-data"
}

// Acquire scans inline scripts for the data assignment and returns the
// window-filtered, capped item sequence, or the raw page blob on a pattern
// miss.
func (s *EmbeddedDataStrategy) Acquire(ctx context.Context, src seminar.Source) (*seminar.RawContent, error) {
	page, err := s.newPage(ctx)
	if err != nil {
		return nil, apperrors.NewAcquisition(src.URL, "browser session failed", err)
	}
	defer page.Close()

	if err := page.Navigate(src.URL); err != nil {
		return nil, s.fail(page, src, "navigation", err)
	}

	html, err := page.Content()
	if err != nil {
		return nil, s.fail(page, src, "content read", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, apperrors.NewParsing(src.URL, "rendered page markup", err)
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if m := s.pattern.FindStringSubmatch(sel.Text()); m != nil {
			payload = m[1]
			return false
		}
		return true
	})

	if payload == "" {
		s.log.Warn().Str("url", src.URL).Msg("embedded data pattern not found, falling back to raw page")
		filtered, err := Filter(doc, s.cfg.Filter, s.cfg.ItemCap)
		if err != nil {
			return nil, apperrors.NewParsing(src.URL, "fallback filtering", err)
		}
		return seminar.BlobContent(filtered), nil
	}

	items, err := parseEmbeddedItems(payload)
	if err != nil {
		return nil, apperrors.NewParsing(src.URL, "embedded event data", err)
	}

	items = SelectUpcoming(items, s.now(), s.cfg.Window, s.cfg.TitleFilter)
	if s.cfg.ItemCap > 0 && len(items) > s.cfg.ItemCap {
		items = items[:s.cfg.ItemCap]
	}

	s.log.Debug().Str("url", src.URL).Int("items", len(items)).Msg("acquired embedded data")
	return seminar.ItemContent(items), nil
}

// parseEmbeddedItems converts the matched JSON array into loosely-typed event
// items. Unrecognized keys are carried along as display strings.
func parseEmbeddedItems(payload string) ([]seminar.RawEventItem, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, err
	}

	items := make([]seminar.RawEventItem, 0, len(raw))
	for _, entry := range raw {
		item := seminar.RawEventItem{Fields: make(map[string]string)}

		for _, key := range embeddedTitleKeys {
			if v, ok := entry[key].(string); ok && v != "" {
				item.Title = v
				break
			}
		}
		for _, key := range embeddedStartKeys {
			if t, ok := parseEmbeddedStart(entry[key]); ok {
				item.Start = t
				break
			}
		}
		for _, key := range embeddedURLKeys {
			if v, ok := entry[key].(string); ok && v != "" {
				item.URL = v
				break
			}
		}
		for key, value := range entry {
			item.Fields[key] = fmt.Sprint(value)
		}

		items = append(items, item)
	}
	return items, nil
}

func parseEmbeddedStart(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case string:
		for _, layout := range embeddedTimeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	case float64:
		// Epoch seconds
		return time.Unix(int64(v), 0).UTC(), true
	}
	return time.Time{}, false
}
