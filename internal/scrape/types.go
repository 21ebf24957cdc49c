package scrape

import (
	"context"
	"time"

	"liontalk/seminarworker/internal/seminar"
)

// Page is the browser session surface a strategy drives. Implemented by
// browser.Session; tests substitute canned pages.
type Page interface {
	// Navigate loads a URL and waits for the load condition
	Navigate(url string) error

	// WaitReady waits until the selector is attached
	WaitReady(selector string) error

	// InnerHTML reads the inner markup of a selector
	InnerHTML(selector string) (string, error)

	// Content reads the full rendered page markup
	Content() (string, error)

	// Screenshot writes a diagnostic screenshot
	Screenshot(path string) error

	// Close releases the session
	Close()
}

// PageFactory opens a new exclusively-owned page session.
type PageFactory func(ctx context.Context) (Page, error)

// Strategy is the shared acquisition contract. Each call owns one page
// session for its own lifetime and releases it on every exit path.
type Strategy interface {
	// Acquire collects raw content for one source
	Acquire(ctx context.Context, src seminar.Source) (*seminar.RawContent, error)

	// Name returns the strategy's name for logging and identification
	Name() string
}

// FilterSpec configures the content filter for one site layout.
type FilterSpec struct {
	// Container is the named region holding the event content; when absent
	// from the page the filter falls back to the full document
	Container string
	// Item is the repeated-item selector; when set, output is capped to the
	// leading items in document order
	Item string
	// Noise lists inline wrapper tags to unwrap without altering their text
	Noise []string
}

// ListSelectors configures summary-list row parsing for the list-then-detail
// layout.
type ListSelectors struct {
	Title string
	Link  string
	When  string
	// WhenFormats are tried in order against the trimmed date text
	WhenFormats []string
}

// DetailSelectors configures best-effort field probing on a detail page.
// Each field lists fallback selectors, first non-empty match wins.
type DetailSelectors struct {
	Location    []string
	Speaker     []string
	Affiliation []string
	Body        []string
}

// StrategyConfig carries everything a strategy variant needs. Unused fields
// are ignored by variants that do not need them.
type StrategyConfig struct {
	Pages          PageFactory
	Filter         FilterSpec
	List           ListSelectors
	Detail         DetailSelectors
	ScriptPattern  string
	ItemCap        int
	Window         time.Duration
	TitleFilter    string
	Location       *time.Location
	ScreenshotPath string

	// Now is a clock hook for the event window; defaults to time.Now
	Now func() time.Time
}
