package scrape

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"liontalk/seminarworker/internal/seminar"
	apperrors "liontalk/seminarworker/pkg/errors"
)

// mockCache is an in-memory CacheService for guard tests.
type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("cache miss")
}

func (m *mockCache) Set(key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func TestPlainFetchAcquire(t *testing.T) {
	s := NewPlainFetchStrategy(StrategyConfig{
		Filter: FilterSpec{Container: "#seminar-content", Noise: []string{"strong"}},
	}, newMockCache())
	s.fetch = func(url string) (io.Reader, error) {
		return strings.NewReader(`<html><body>
			<div id="seminar-content"><p>Algebra seminar, <strong>Friday</strong> 4pm.</p></div>
		</body></html>`), nil
	}

	content, err := s.Acquire(context.Background(), seminar.Source{URL: "https://math.uni.edu/seminars"})
	assert.NoError(t, err)
	assert.False(t, content.HasItems())
	assert.Contains(t, content.HTML, "Algebra seminar")
	assert.NotContains(t, content.HTML, "<strong>")
}

func TestPlainFetchAcquire_GuardActive(t *testing.T) {
	cacheSvc := newMockCache()
	cacheSvc.Set("math.uni.edu_fetch_guard", []byte("500"), plainGuardTTL)

	s := NewPlainFetchStrategy(StrategyConfig{}, cacheSvc)
	s.fetch = func(url string) (io.Reader, error) {
		t.Fatal("fetch must not run while the guard is active")
		return nil, nil
	}

	content, err := s.Acquire(context.Background(), seminar.Source{URL: "https://math.uni.edu/seminars"})
	assert.Nil(t, content)
	assert.Equal(t, apperrors.ErrorTypeAcquisition, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "request guard active")
}

func TestPlainFetchAcquire_RateLimitSetsGuard(t *testing.T) {
	cacheSvc := newMockCache()

	s := NewPlainFetchStrategy(StrategyConfig{}, cacheSvc)
	s.fetch = func(url string) (io.Reader, error) {
		return nil, fmt.Errorf("rate limited; retry after %s", "30")
	}

	_, err := s.Acquire(context.Background(), seminar.Source{URL: "https://math.uni.edu/seminars"})
	assert.Equal(t, apperrors.ErrorTypeAcquisition, apperrors.TypeOf(err))

	_, err = cacheSvc.Get("math.uni.edu_fetch_guard")
	assert.NoError(t, err)
}

func TestPlainFetchAcquire_NoCacheService(t *testing.T) {
	s := NewPlainFetchStrategy(StrategyConfig{
		Filter: FilterSpec{Container: "main"},
	}, nil)
	s.fetch = func(url string) (io.Reader, error) {
		return strings.NewReader(`<html><body><main>schedule</main></body></html>`), nil
	}

	content, err := s.Acquire(context.Background(), seminar.Source{URL: "https://math.uni.edu/seminars"})
	assert.NoError(t, err)
	assert.Contains(t, content.HTML, "schedule")
}
