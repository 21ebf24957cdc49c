package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Filter narrows a parsed page to the substructure relevant for extraction.
// The region is located by spec.Container; if absent the full document is
// used instead — whether that fallback is acceptable is the caller's call.
// Noise tags are unwrapped in place, and when spec.Item is set the repeated
// items are capped to the first capCount in document order and rebuilt into a
// minimal container.
func Filter(doc *goquery.Document, spec FilterSpec, capCount int) (string, error) {
	region := doc.Find("html")
	if spec.Container != "" {
		if found := doc.Find(spec.Container); found.Length() > 0 {
			region = found.First()
		}
	}

	for _, tag := range spec.Noise {
		// Unwrap removes the parents of the matched nodes, so selecting the
		// tag's contents strips the tag while keeping its text.
		region.Find(tag).Contents().Unwrap()
	}

	if spec.Item != "" {
		items := region.Find(spec.Item)
		if items.Length() > 0 {
			var b strings.Builder
			b.WriteString("<div>")
			items.EachWithBreak(func(i int, s *goquery.Selection) bool {
				if capCount > 0 && i >= capCount {
					return false
				}
				if html, err := goquery.OuterHtml(s); err == nil {
					b.WriteString(html)
				}
				return true
			})
			b.WriteString("</div>")
			return b.String(), nil
		}
	}

	return goquery.OuterHtml(region)
}

// parseDocument creates a goquery document from markup.
func parseDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// probeText tries the fallback selectors in order and returns the first
// non-empty trimmed text.
func probeText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
