// Package extract submits strategy output to the generative structured
// extraction service and validates the typed response into entry records.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"

	"liontalk/seminarworker/internal/seminar"
	"liontalk/seminarworker/logger"
	apperrors "liontalk/seminarworker/pkg/errors"
)

const instruction = `You are given seminar/event announcements from a university department website.
Extract every distinct upcoming event into a JSON array. For each event fill:
seminar_title, date, location, time, speaker, affiliation, abstract, bio.
Use an empty string for any value that is not present in the source material.
Do not invent values.`

// Extractor converts raw acquisition output into seminar records via the
// extraction service, retrying overload-class failures with exponential
// backoff and jitter.
type Extractor struct {
	gen             generator
	maxAttempts     int
	initialInterval time.Duration
	log             *logger.Logger
}

// New creates an extractor backed by the Gemini API.
func New(ctx context.Context, apiKey, model string, maxAttempts int) (*Extractor, error) {
	gen, err := newGeminiGenerator(ctx, apiKey, model)
	if err != nil {
		return nil, apperrors.NewConfiguration("extraction service client", err)
	}
	return newExtractor(gen, maxAttempts, 2*time.Second), nil
}

func newExtractor(gen generator, maxAttempts int, initialInterval time.Duration) *Extractor {
	return &Extractor{
		gen:             gen,
		maxAttempts:     maxAttempts,
		initialInterval: initialInterval,
		log:             logger.ForExtractor(),
	}
}

// Extract submits the raw content and returns the seminar record for this
// source. Department and series always come from the caller; whatever the
// service might claim for them is never requested, let alone trusted.
func (e *Extractor) Extract(ctx context.Context, content *seminar.RawContent, department, series string) (*seminar.Record, error) {
	parts := buildParts(content)

	attempt := 0
	var text string
	op := func() error {
		attempt++
		t, err := e.gen.generate(ctx, parts)
		if err != nil {
			if isTransient(err) {
				e.log.Warn().Err(err).Int("attempt", attempt).Msg("extraction service overloaded, will retry")
				return apperrors.NewTransientExtraction(department, "service overloaded", err)
			}
			return backoff.Permanent(err)
		}
		text = t
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.initialInterval
	// NewExponentialBackOff randomizes every interval, which gives us the
	// jitter the overloaded service needs.
	retries := uint64(0)
	if e.maxAttempts > 1 {
		retries = uint64(e.maxAttempts - 1)
	}

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx)); err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrorTypeTransientExtraction {
			// Bounded retries are exhausted; escalate to fatal for this
			// source only.
			return nil, apperrors.NewFatalExtraction(department, "retry bound exhausted", err)
		}
		return nil, apperrors.NewFatalExtraction(department, "extraction service failed", err)
	}

	entries, err := parseEntries(text)
	if err != nil {
		return nil, apperrors.NewFatalExtraction(department, "malformed typed response", err)
	}

	e.log.Info().Str("department", department).Str("series", series).Int("entries", len(entries)).Msg("extraction complete")

	return &seminar.Record{
		Department: department,
		Series:     series,
		Entries:    entries,
	}, nil
}

// buildParts serializes item sequences inline in the instruction text and
// attaches HTML blobs as a separate document part.
func buildParts(content *seminar.RawContent) []*genai.Part {
	if content.HasItems() {
		data, _ := json.Marshal(itemsForPrompt(content.Items))
		return []*genai.Part{
			genai.NewPartFromText(instruction + "\n\nEvent data:\n" + string(data)),
		}
	}
	return []*genai.Part{
		genai.NewPartFromText(instruction),
		genai.NewPartFromBytes([]byte(content.HTML), "text/html"),
	}
}

// itemsForPrompt flattens the loosely-typed items into display maps.
func itemsForPrompt(items []seminar.RawEventItem) []map[string]string {
	out := make([]map[string]string, 0, len(items))
	for _, item := range items {
		m := make(map[string]string, len(item.Fields)+3)
		for k, v := range item.Fields {
			m[k] = v
		}
		m["title"] = item.Title
		if item.URL != "" {
			m["url"] = item.URL
		}
		if !item.Start.IsZero() {
			m["start"] = item.Start.Format(time.RFC3339)
		}
		out = append(out, m)
	}
	return out
}

// parseEntries validates the typed response strictly against the entry
// schema. Unknown fields mean the service drifted from the contract and the
// response is rejected.
func parseEntries(text string) ([]seminar.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.DisallowUnknownFields()

	var entries []seminar.Entry
	if err := dec.Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// isTransient reports whether the failure is in the overload class that is
// worth retrying: service unavailable or resource exhausted. Everything else
// aborts immediately.
func isTransient(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusServiceUnavailable ||
			apiErr.Code == http.StatusTooManyRequests
	}
	return false
}
