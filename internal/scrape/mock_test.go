package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fakePage implements Page over canned markup keyed by URL.
type fakePage struct {
	pages       map[string]string
	current     string
	navErr      error
	screenshots []string
	closed      bool
}

func newFakePage(pages map[string]string) *fakePage {
	return &fakePage{pages: pages}
}

func (p *fakePage) Navigate(url string) error {
	if p.navErr != nil {
		return p.navErr
	}
	if _, ok := p.pages[url]; !ok {
		return fmt.Errorf("navigation timeout: %s", url)
	}
	p.current = url
	return nil
}

func (p *fakePage) WaitReady(selector string) error {
	doc, err := p.doc()
	if err != nil {
		return err
	}
	if doc.Find(selector).Length() == 0 {
		return fmt.Errorf("wait timeout for selector %q", selector)
	}
	return nil
}

func (p *fakePage) InnerHTML(selector string) (string, error) {
	doc, err := p.doc()
	if err != nil {
		return "", err
	}
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return "", fmt.Errorf("selector %q not found", selector)
	}
	return sel.First().Html()
}

func (p *fakePage) Content() (string, error) {
	html, ok := p.pages[p.current]
	if !ok {
		return "", fmt.Errorf("no page loaded")
	}
	return html, nil
}

func (p *fakePage) Screenshot(path string) error {
	p.screenshots = append(p.screenshots, path)
	return nil
}

func (p *fakePage) Close() {
	p.closed = true
}

func (p *fakePage) doc() (*goquery.Document, error) {
	html, ok := p.pages[p.current]
	if !ok {
		return nil, fmt.Errorf("no page loaded")
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func pagesFor(p *fakePage) PageFactory {
	return func(ctx context.Context) (Page, error) {
		return p, nil
	}
}
