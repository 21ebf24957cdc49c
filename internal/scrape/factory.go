package scrape

import (
	"time"

	"liontalk/seminarworker/config"
	"liontalk/seminarworker/internal/seminar"
	"liontalk/seminarworker/services/cache"
)

// CreateStrategies builds the strategy registry the pipeline dispatches on.
// Selector specs are per-layout, not per-source: a source row only picks a
// scrape method, and every site using that method shares the recipe below.
func CreateStrategies(cfg *config.Config, pages PageFactory, cacheSvc cache.CacheService) map[seminar.StrategyID]Strategy {
	base := StrategyConfig{
		Pages:          pages,
		ItemCap:        cfg.ItemCap,
		Window:         cfg.EventWindow,
		Location:       cfg.EventLocation(),
		ScreenshotPath: cfg.DebugScreenshotPath,
	}

	staticCfg := base
	staticCfg.Filter = FilterSpec{
		Container: "#seminar-content",
		Noise:     []string{"strong", "em", "b"},
	}

	embeddedCfg := base
	embeddedCfg.ScriptPattern = `(?s)(?:var|let|const)\s+(?:seminarEvents|upcomingEvents|eventData)\s*=\s*(\[.*?\])\s*;`
	embeddedCfg.TitleFilter = "Seminar"
	embeddedCfg.Filter = FilterSpec{
		Container: "main, div#content",
		Noise:     []string{"strong", "em"},
	}

	cardCfg := base
	cardCfg.Filter = FilterSpec{
		Item:  "article.event-card, div.seminar-card",
		Noise: []string{"strong", "em"},
	}

	listDetailCfg := base
	listDetailCfg.Filter = FilterSpec{
		Item: "ul.seminar-list li, table.events tbody tr",
	}
	listDetailCfg.List = ListSelectors{
		Title: "a.event-title, h3 a, td.title a",
		Link:  "a",
		When:  "time, span.date, td.date",
		WhenFormats: []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"January 2, 2006 3:04 PM",
			"January 2, 2006",
			"2006-01-02 15:04",
			"2006-01-02",
		},
	}
	listDetailCfg.Detail = DetailSelectors{
		Location:    []string{"span.location", "div.event-location", "p.location"},
		Speaker:     []string{"span.speaker", "div.event-speaker", "h4.speaker"},
		Affiliation: []string{"span.affiliation", "div.event-affiliation"},
		Body:        []string{"div.event-description", "div.abstract", "article .content", "div.entry-content"},
	}

	plainCfg := base
	plainCfg.Filter = FilterSpec{
		Container: "#seminar-content, main",
		Noise:     []string{"strong", "em", "b"},
	}

	return map[seminar.StrategyID]Strategy{
		seminar.StrategyStaticBlock:  NewStaticBlockStrategy(staticCfg),
		seminar.StrategyEmbeddedData: NewEmbeddedDataStrategy(embeddedCfg),
		seminar.StrategyCardList:     NewCardListStrategy(cardCfg),
		seminar.StrategyListDetail:   NewListDetailStrategy(listDetailCfg),
		seminar.StrategyPlainFetch:   NewPlainFetchStrategy(plainCfg, cacheSvc),
	}
}
