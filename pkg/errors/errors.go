// Package errors provides custom error types for the fieldguide system.
// These errors enable programmatic error checking at the adapter, reconciler,
// and generation boundaries so callers can render specific remediation hints.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are aliases for the standard library equivalents so callers
// don't need a second errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the fieldguide system
var (
	// ErrNotFound indicates that no data source produced a usable record
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrProviderUnavailable indicates that a provider is temporarily unavailable
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited indicates that an API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrTransport indicates a network-level failure (DNS, connection refused)
	ErrTransport = errors.New("transport failure")
)

// NotFoundError represents an error when a query matched no records
type NotFoundError struct {
	Resource string
	Query    string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s matching %q not found", e.Resource, e.Query)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, query string) *NotFoundError {
	return &NotFoundError{Resource: resource, Query: query}
}

// ValidationError represents a validation failure, rejected before any
// network call is attempted
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents a non-2xx response from a data provider API
type APIError struct {
	Source     string // Source ID as string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrProviderUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(source string, statusCode int, message string) *APIError {
	return &APIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
	}
}

// TransportError represents a network-level failure before any HTTP status
// was received: DNS resolution, connection refused, TLS faults
type TransportError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error reaching %s: %v", e.Source, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// NewTransportError creates a new TransportError
func NewTransportError(source string, err error) *TransportError {
	return &TransportError{Source: source, Err: err}
}

// TimeoutError represents an operation timeout
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	if e.Duration != "" {
		return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
	}
	return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
}

// Is implements errors.Is support
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(operation, duration, message string) *TimeoutError {
	return &TimeoutError{
		Operation: operation,
		Duration:  duration,
		Message:   message,
	}
}

// GenerationKind classifies a text-generation failure so the caller can show
// a specific, actionable message
type GenerationKind int

// Generation failure kinds
const (
	// GenerationUnauthorized means the credential was missing or rejected
	GenerationUnauthorized GenerationKind = iota
	// GenerationRateLimited means the generation provider throttled the call
	GenerationRateLimited
	// GenerationTimeout means the generation call exceeded its deadline
	GenerationTimeout
	// GenerationProviderFault covers any other provider-side failure
	GenerationProviderFault
)

// String returns a stable name for the kind
func (k GenerationKind) String() string {
	switch k {
	case GenerationUnauthorized:
		return "unauthorized"
	case GenerationRateLimited:
		return "rate_limited"
	case GenerationTimeout:
		return "timeout"
	case GenerationProviderFault:
		return "provider_fault"
	default:
		return "unknown"
	}
}

// GenerationError represents a failure from the text-generation provider
type GenerationError struct {
	Kind   GenerationKind
	Detail string
	Err    error
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("generation failed (%s): %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("generation failed (%s)", e.Kind)
}

// Unwrap implements errors.Unwrap
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *GenerationError) Is(target error) bool {
	switch e.Kind {
	case GenerationUnauthorized:
		return target == ErrAPIKeyRequired
	case GenerationRateLimited:
		return target == ErrRateLimited
	case GenerationTimeout:
		return target == ErrTimeout
	case GenerationProviderFault:
		return target == ErrProviderUnavailable
	default:
		return false
	}
}

// NewGenerationError creates a new GenerationError
func NewGenerationError(kind GenerationKind, detail string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Detail: detail, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsTransport checks if an error is a network transport error
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsProviderUnavailable checks if an error indicates provider unavailability
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapAPI wraps an error as an APIError
func WrapAPI(source string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}

// ParseError represents an error when decoding a provider payload
type ParseError struct {
	Format  string // "json", "yaml"
	Subject string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.Subject, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, subject string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Subject: subject, Message: err.Error(), Err: err}
}
