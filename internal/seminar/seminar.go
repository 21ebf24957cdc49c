package seminar

import "time"

// StrategyID selects which acquisition strategy handles a source row.
// The values match the scrape_method column of the source configuration.
type StrategyID int

const (
	StrategyUnknown      StrategyID = 0
	StrategyStaticBlock  StrategyID = 1
	StrategyEmbeddedData StrategyID = 2
	StrategyCardList     StrategyID = 3
	StrategyListDetail   StrategyID = 4
	StrategyPlainFetch   StrategyID = 5
)

// String returns the strategy name for logging
func (id StrategyID) String() string {
	switch id {
	case StrategyStaticBlock:
		return "static-block"
	case StrategyEmbeddedData:
		return "embedded-data"
	case StrategyCardList:
		return "card-list"
	case StrategyListDetail:
		return "list-detail"
	case StrategyPlainFetch:
		return "plain-fetch"
	default:
		return "unknown"
	}
}

// Source is one row of the source configuration. Department and series are
// authoritative: they are attached to the extraction result as-is and never
// replaced by values inferred from page content.
type Source struct {
	URL        string
	Department string
	Series     string
	Strategy   StrategyID
}

// Entry is one canonical seminar record. All fields are strings and an empty
// string means "unknown"; the field set is identical across all strategies.
type Entry struct {
	Title       string `json:"seminar_title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Time        string `json:"time"`
	Speaker     string `json:"speaker"`
	Affiliation string `json:"affiliation"`
	Abstract    string `json:"abstract"`
	Bio         string `json:"bio"`
}

// Record is one source's full result.
type Record struct {
	Department string  `json:"department"`
	Series     string  `json:"series"`
	Entries    []Entry `json:"entries"`
}

// RawEventItem is a loosely-typed event scraped from a list or an embedded
// data blob. Fields holds additional display strings (date, time, location,
// speaker, ...) keyed by the canonical entry field names.
type RawEventItem struct {
	Title  string
	Start  time.Time
	URL    string
	Fields map[string]string
}

// RawContent is the output of an acquisition strategy: either an HTML blob or
// an ordered item sequence, never both.
type RawContent struct {
	HTML  string
	Items []RawEventItem
}

// BlobContent wraps filtered page markup.
func BlobContent(html string) *RawContent {
	return &RawContent{HTML: html}
}

// ItemContent wraps an ordered item sequence. A nil slice is normalized so an
// empty result still reads as an item sequence, not a blob.
func ItemContent(items []RawEventItem) *RawContent {
	if items == nil {
		items = []RawEventItem{}
	}
	return &RawContent{Items: items}
}

// HasItems reports whether the content is an item sequence rather than a blob.
func (c *RawContent) HasItems() bool {
	return c.Items != nil
}
