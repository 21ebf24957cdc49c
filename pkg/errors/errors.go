package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeConfiguration represents a missing or invalid configuration
	// precondition; fatal for the whole batch
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeUnknownStrategy represents a source row whose scrape_method
	// has no matching strategy
	ErrorTypeUnknownStrategy ErrorType = "unknown_strategy"
	// ErrorTypeAcquisition represents navigation, element-wait or
	// content-location failures during acquisition
	ErrorTypeAcquisition ErrorType = "acquisition"
	// ErrorTypeParsing represents HTML or embedded-data parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeTransientExtraction represents an overload-class failure from
	// the extraction service
	ErrorTypeTransientExtraction ErrorType = "transient_extraction"
	// ErrorTypeFatalExtraction represents a non-retryable extraction failure
	ErrorTypeFatalExtraction ErrorType = "fatal_extraction"
	// ErrorTypeSink represents output sink errors
	ErrorTypeSink ErrorType = "sink"
)

// PipelineError represents a pipeline-specific error
type PipelineError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *PipelineError) IsRetryable() bool {
	return e.Type == ErrorTypeTransientExtraction
}

// New creates a new PipelineError
func New(errType ErrorType, source, message string, err error) *PipelineError {
	return &PipelineError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *PipelineError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// NewUnknownStrategy creates a new unknown strategy error
func NewUnknownStrategy(source, message string) *PipelineError {
	return New(ErrorTypeUnknownStrategy, source, message, nil)
}

// NewAcquisition creates a new acquisition error
func NewAcquisition(source, message string, err error) *PipelineError {
	return New(ErrorTypeAcquisition, source, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *PipelineError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewTransientExtraction creates a new transient extraction error
func NewTransientExtraction(source, message string, err error) *PipelineError {
	return New(ErrorTypeTransientExtraction, source, message, err)
}

// NewFatalExtraction creates a new fatal extraction error
func NewFatalExtraction(source, message string, err error) *PipelineError {
	return New(ErrorTypeFatalExtraction, source, message, err)
}

// NewSink creates a new sink error
func NewSink(message string, err error) *PipelineError {
	return New(ErrorTypeSink, "", message, err)
}

// TypeOf returns the pipeline error type of err, or an empty string
func TypeOf(err error) ErrorType {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Type
	}
	return ""
}
