package scrape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"liontalk/seminarworker/internal/seminar"
	apperrors "liontalk/seminarworker/pkg/errors"
)

func TestStaticBlockAcquire(t *testing.T) {
	page := newFakePage(map[string]string{
		"https://math.uni.edu/seminars": `<html><body>
			<div id="seminar-content">
				<p>Talk <strong>one</strong> on March 5.</p>
				<p>Talk <em>two</em> on March 12.</p>
			</div>
		</body></html>`,
	})

	s := NewStaticBlockStrategy(StrategyConfig{
		Pages:  pagesFor(page),
		Filter: FilterSpec{Container: "#seminar-content", Noise: []string{"strong", "em"}},
	})

	content, err := s.Acquire(context.Background(), seminar.Source{URL: "https://math.uni.edu/seminars"})
	assert.NoError(t, err)
	assert.False(t, content.HasItems())
	assert.Contains(t, content.HTML, "Talk")
	assert.Contains(t, content.HTML, "one")
	assert.NotContains(t, content.HTML, "<strong>")
	assert.NotContains(t, content.HTML, "<em>")
	assert.True(t, page.closed)
}

func TestStaticBlockAcquire_MissingRegion(t *testing.T) {
	page := newFakePage(map[string]string{
		"https://math.uni.edu/seminars": `<html><body><div id="other">nothing here</div></body></html>`,
	})

	s := NewStaticBlockStrategy(StrategyConfig{
		Pages:          pagesFor(page),
		Filter:         FilterSpec{Container: "#seminar-content"},
		ScreenshotPath: "debug_error.png",
	})

	content, err := s.Acquire(context.Background(), seminar.Source{URL: "https://math.uni.edu/seminars"})
	assert.Nil(t, content)
	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeAcquisition, apperrors.TypeOf(err))
	assert.Equal(t, []string{"debug_error.png"}, page.screenshots)
	assert.True(t, page.closed)
}

func TestStaticBlockAcquire_NavigationFailure(t *testing.T) {
	page := newFakePage(map[string]string{})

	s := NewStaticBlockStrategy(StrategyConfig{
		Pages:  pagesFor(page),
		Filter: FilterSpec{Container: "#seminar-content"},
	})

	_, err := s.Acquire(context.Background(), seminar.Source{URL: "https://down.uni.edu/seminars"})
	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeAcquisition, apperrors.TypeOf(err))
	assert.True(t, page.closed)
}
