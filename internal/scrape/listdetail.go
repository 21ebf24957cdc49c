package scrape

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"liontalk/seminarworker/internal/seminar"
	apperrors "liontalk/seminarworker/pkg/errors"
)

// ListDetailStrategy handles the list-page plus per-event detail-page
// layout: the summary list yields titles, links and timestamps, the window
// filter picks the upcoming events, and each survivor's own page is visited
// to enrich location, speaker and body text. The body is segmented into
// abstract and biography before extraction.
type ListDetailStrategy struct {
	baseStrategy
}

// NewListDetailStrategy creates a new list-then-detail strategy
func NewListDetailStrategy(cfg StrategyConfig) *ListDetailStrategy {
	return &ListDetailStrategy{baseStrategy: newBase("list-detail", cfg)}
}

// Name implements Strategy
func (s *ListDetailStrategy) Name() string {
	return "list-detail"
}

// Acquire scrapes the summary list, window-filters it, then enriches each
// remaining item from its detail page. Any navigation or wait failure aborts
// this source.
func (s *ListDetailStrategy) Acquire(ctx context.Context, src seminar.Source) (*seminar.RawContent, error) {
	page, err := s.newPage(ctx)
	if err != nil {
		return nil, apperrors.NewAcquisition(src.URL, "browser session failed", err)
	}
	defer page.Close()

	if err := page.Navigate(src.URL); err != nil {
		return nil, s.fail(page, src, "list navigation", err)
	}
	if err := page.WaitReady(s.cfg.Filter.Item); err != nil {
		return nil, s.fail(page, src, "list row wait", err)
	}

	html, err := page.Content()
	if err != nil {
		return nil, s.fail(page, src, "list read", err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, apperrors.NewParsing(src.URL, "list page markup", err)
	}

	items := s.parseListRows(doc, src.URL)
	items = SelectUpcoming(items, s.now(), s.cfg.Window, "")

	for i := range items {
		if err := s.enrichFromDetail(page, &items[i]); err != nil {
			return nil, s.fail(page, src, "detail navigation", err)
		}
	}

	s.log.Debug().Str("url", src.URL).Int("items", len(items)).Msg("acquired list with details")
	return seminar.ItemContent(items), nil
}

// parseListRows extracts the loosely-typed items from the summary list. Rows
// without a title or link are skipped; rows without a parsable timestamp are
// kept here and dropped later by the window filter.
func (s *ListDetailStrategy) parseListRows(doc *goquery.Document, baseURL string) []seminar.RawEventItem {
	var items []seminar.RawEventItem

	doc.Find(s.cfg.Filter.Item).Each(func(_ int, row *goquery.Selection) {
		title := strings.TrimSpace(row.Find(s.cfg.List.Title).First().Text())
		href, _ := row.Find(s.cfg.List.Link).First().Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || href == "" {
			return
		}

		item := seminar.RawEventItem{
			Title:  title,
			URL:    resolveURL(baseURL, href),
			Fields: make(map[string]string),
		}

		whenSel := row.Find(s.cfg.List.When).First()
		whenText := strings.TrimSpace(whenSel.Text())
		if dt, ok := whenSel.Attr("datetime"); ok && dt != "" {
			whenText = strings.TrimSpace(dt)
		}
		item.Start = s.parseWhen(whenText)

		items = append(items, item)
	})

	return items
}

// parseWhen tries the configured layouts in order, interpreting naive
// timestamps in the configured event timezone.
func (s *ListDetailStrategy) parseWhen(text string) time.Time {
	loc := s.cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range s.cfg.List.WhenFormats {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// enrichFromDetail visits the item's own page and fills the display fields by
// best-effort selector probing. Field probing never fails the source; only
// navigation does.
func (s *ListDetailStrategy) enrichFromDetail(page Page, item *seminar.RawEventItem) error {
	if err := page.Navigate(item.URL); err != nil {
		return err
	}

	html, err := page.Content()
	if err != nil {
		return err
	}

	doc, err := parseDocument(html)
	if err != nil {
		s.log.Warn().Err(err).Str("url", item.URL).Msg("detail page unparsable, keeping list fields")
		return nil
	}

	item.Fields["location"] = probeText(doc, s.cfg.Detail.Location)
	item.Fields["speaker"] = probeText(doc, s.cfg.Detail.Speaker)
	item.Fields["affiliation"] = probeText(doc, s.cfg.Detail.Affiliation)

	abstract, bio := SplitAbstractBio(probeText(doc, s.cfg.Detail.Body))
	item.Fields["abstract"] = abstract
	item.Fields["bio"] = bio

	loc := s.cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	item.Fields["date"] = item.Start.In(loc).Format("January 2, 2006")
	item.Fields["time"] = item.Start.In(loc).Format("3:04 PM")

	return nil
}

func resolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
