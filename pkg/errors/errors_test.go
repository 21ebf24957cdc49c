package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewAcquisition("https://math.uni.edu/seminars", "navigation failed", cause)

	assert.Equal(t, ErrorTypeAcquisition, err.Type)
	assert.Contains(t, err.Error(), "acquisition")
	assert.Contains(t, err.Error(), "https://math.uni.edu/seminars")
	assert.Contains(t, err.Error(), "navigation failed")
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.False(t, err.IsRetryable())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, NewTransientExtraction("Statistics", "service overloaded", nil).IsRetryable())
	assert.False(t, NewFatalExtraction("Statistics", "retry bound exhausted", nil).IsRetryable())
	assert.False(t, NewUnknownStrategy("https://x", "no strategy for scrape method").IsRetryable())
	assert.False(t, NewConfiguration("GEMINI_API_KEY is not set", nil).IsRetryable())
}

func TestTypeOf(t *testing.T) {
	err := NewParsing("https://x", "bad markup", nil)
	assert.Equal(t, ErrorTypeParsing, TypeOf(err))

	wrapped := fmt.Errorf("while processing: %w", err)
	assert.Equal(t, ErrorTypeParsing, TypeOf(wrapped))

	assert.Equal(t, ErrorType(""), TypeOf(fmt.Errorf("plain")))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}
