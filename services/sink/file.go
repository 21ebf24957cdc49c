package sink

import (
	"context"
	"encoding/json"
	"os"

	"liontalk/seminarworker/internal/seminar"
	apperrors "liontalk/seminarworker/pkg/errors"
)

// FileSink writes the output collection as a single array-of-objects JSON
// document, one object per successful source.
type FileSink struct {
	path string
}

// NewFileSink creates a new file sink
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Write marshals the records and replaces the output file atomically enough
// for a batch tool: a temp file in the same directory, then rename.
func (s *FileSink) Write(ctx context.Context, records []seminar.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperrors.NewSink("failed to marshal output collection", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return apperrors.NewSink("failed to write output file", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperrors.NewSink("failed to replace output file", err)
	}
	return nil
}

// Close implements Sink
func (s *FileSink) Close() error {
	return nil
}
