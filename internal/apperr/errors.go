// Package apperr defines the error taxonomy shared by the upstream clients
// and the aggregation layer. Handlers translate these into HTTP statuses;
// nothing in this package knows about HTTP framing.
package apperr

import (
	"errors"
	"fmt"
	"strconv"
)

// Provider names used in UpstreamError.
const (
	ProviderCatalog = "catalog"
	ProviderPricing = "pricing"
)

// StatusTimeout is the UpstreamError status used when an upstream call
// exceeded its deadline rather than returning an HTTP response.
const StatusTimeout = "timeout"

// ConfigError indicates required configuration (typically catalog
// credentials) is missing or unusable. It is detected before any network
// call is made.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// AuthError indicates the catalog credential exchange was rejected.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("credential exchange rejected (status %d)", e.Status)
}

// UpstreamError indicates a non-success response from one of the upstream
// providers. Status is the HTTP status code as text, or StatusTimeout when
// the call timed out.
type UpstreamError struct {
	Provider string
	Status   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream error (status %s)", e.Provider, e.Status)
}

// Upstream builds an UpstreamError from an HTTP status code.
func Upstream(provider string, statusCode int) *UpstreamError {
	return &UpstreamError{Provider: provider, Status: strconv.Itoa(statusCode)}
}

// UpstreamTimeout builds an UpstreamError for a timed-out call.
func UpstreamTimeout(provider string) *UpstreamError {
	return &UpstreamError{Provider: provider, Status: StatusTimeout}
}

// NotFoundError indicates a lookup yielded no entity. Absence of a
// single-result upstream lookup is normal and reported as nil; this error
// exists for callers that require the entity to exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " " + e.ID + " not found"
}

// ValidationError indicates malformed caller input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Reason
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
