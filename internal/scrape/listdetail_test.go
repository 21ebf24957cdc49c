package scrape

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"liontalk/seminarworker/internal/seminar"
	apperrors "liontalk/seminarworker/pkg/errors"
)

func listDetailTestConfig(page *fakePage, now time.Time) StrategyConfig {
	return StrategyConfig{
		Pages:  pagesFor(page),
		Filter: FilterSpec{Item: "ul.seminar-list li"},
		List: ListSelectors{
			Title:       "a.event-title",
			Link:        "a",
			When:        "time",
			WhenFormats: []string{time.RFC3339, "2006-01-02"},
		},
		Detail: DetailSelectors{
			Location:    []string{"span.location"},
			Speaker:     []string{"span.speaker"},
			Affiliation: []string{"span.affiliation"},
			Body:        []string{"div.abstract"},
		},
		Window:   30 * 24 * time.Hour,
		Location: time.UTC,
		Now:      func() time.Time { return now },
	}
}

const listDetailListPage = `<html><body><ul class="seminar-list">
	<li><a class="event-title" href="/events/1">Learning Theory Seminar</a>
		<time datetime="2026-04-03T15:00:00Z">Apr 3</time></li>
	<li><a class="event-title" href="/events/2">Past Seminar</a>
		<time datetime="2026-03-01T15:00:00Z">Mar 1</time></li>
	<li><a class="event-title" href="https://stat.uni.edu/events/3">Optimization Seminar</a>
		<time datetime="2026-04-10T09:30:00Z">Apr 10</time></li>
	<li><a class="event-title" href="/events/4">Undated Seminar</a>
		<time>TBD</time></li>
	<li><span>announcement row without a link</span></li>
</ul></body></html>`

func TestListDetailAcquire(t *testing.T) {
	page := newFakePage(map[string]string{
		"https://stat.uni.edu/events": listDetailListPage,
		"https://stat.uni.edu/events/1": `<html><body>
			<span class="location">Room 214</span>
			<span class="speaker">Dr. Ada Park</span>
			<span class="affiliation">MIT</span>
			<div class="abstract">We prove bounds. About the Speaker Ada leads the lab.</div>
		</body></html>`,
		"https://stat.uni.edu/events/3": `<html><body>
			<span class="location">Hall B</span>
			<div class="abstract">Convex methods, no speaker section.</div>
		</body></html>`,
	})

	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	s := NewListDetailStrategy(listDetailTestConfig(page, now))

	content, err := s.Acquire(context.Background(), seminar.Source{URL: "https://stat.uni.edu/events"})
	assert.NoError(t, err)
	assert.True(t, content.HasItems())
	assert.Len(t, content.Items, 2)

	first := content.Items[0]
	assert.Equal(t, "Learning Theory Seminar", first.Title)
	assert.Equal(t, "https://stat.uni.edu/events/1", first.URL)
	assert.Equal(t, "Room 214", first.Fields["location"])
	assert.Equal(t, "Dr. Ada Park", first.Fields["speaker"])
	assert.Equal(t, "MIT", first.Fields["affiliation"])
	assert.Equal(t, "We prove bounds.", first.Fields["abstract"])
	assert.Equal(t, "Ada leads the lab.", first.Fields["bio"])
	assert.Equal(t, "April 3, 2026", first.Fields["date"])
	assert.Equal(t, "3:00 PM", first.Fields["time"])

	second := content.Items[1]
	assert.Equal(t, "Optimization Seminar", second.Title)
	assert.Equal(t, "Hall B", second.Fields["location"])
	assert.Equal(t, "", second.Fields["speaker"])
	assert.Equal(t, "Convex methods, no speaker section.", second.Fields["abstract"])
	assert.Equal(t, BioNotFound, second.Fields["bio"])
	assert.Equal(t, "9:30 AM", second.Fields["time"])

	assert.True(t, page.closed)
}

func TestListDetailAcquire_DetailNavigationFailure(t *testing.T) {
	// The upcoming item's detail page is unreachable, which aborts the source.
	page := newFakePage(map[string]string{
		"https://stat.uni.edu/events": listDetailListPage,
	})

	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	cfg := listDetailTestConfig(page, now)
	cfg.ScreenshotPath = "detail_error.png"
	s := NewListDetailStrategy(cfg)

	content, err := s.Acquire(context.Background(), seminar.Source{URL: "https://stat.uni.edu/events"})
	assert.Nil(t, content)
	assert.Equal(t, apperrors.ErrorTypeAcquisition, apperrors.TypeOf(err))
	assert.Equal(t, []string{"detail_error.png"}, page.screenshots)
	assert.True(t, page.closed)
}

func TestListDetailAcquire_EmptyListAfterWindow(t *testing.T) {
	// Every row is past, undated or malformed: an empty item set is a valid
	// result, not an error.
	page := newFakePage(map[string]string{
		"https://stat.uni.edu/events": `<html><body><ul class="seminar-list">
			<li><a class="event-title" href="/events/2">Past Seminar</a>
				<time datetime="2020-01-01T10:00:00Z">Jan 1</time></li>
		</ul></body></html>`,
	})

	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	s := NewListDetailStrategy(listDetailTestConfig(page, now))

	content, err := s.Acquire(context.Background(), seminar.Source{URL: "https://stat.uni.edu/events"})
	assert.NoError(t, err)
	assert.True(t, content.HasItems())
	assert.Empty(t, content.Items)
}
