package flightapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/entity"
)

// ErrMissingCredentials means the provider was selected but its API
// credentials are absent from the environment. Nothing is sent to the
// network in that case.
var ErrMissingCredentials = errors.New("flight api credentials not configured")

// ErrInvalidLocation means the caller's location descriptor does not carry
// the fields the configured provider's addressing scheme needs.
var ErrInvalidLocation = errors.New("invalid location descriptor")

// SearchRequest is a validated flight query: dates are already normalized to
// YYYY-MM-DD and chronologically ordered by the caller.
type SearchRequest struct {
	Origin      entity.Location
	Destination entity.Location
	StartDate   string
	EndDate     string
	Adults      int
	Currency    string
	Limit       int
}

// Provider prices one round trip against a third-party flight API. Query
// outcomes (timeout, no results, upstream route errors) come back inside the
// QuoteResult; the error return is reserved for caller mistakes and auth or
// configuration problems, where no meaningful query was issued.
type Provider interface {
	Name() string
	Search(ctx context.Context, req SearchRequest) (*entity.QuoteResult, error)
}

// AuthErrorKind separates a token endpoint that never answered from one that
// answered with something unusable.
type AuthErrorKind string

const (
	AuthTimeout  AuthErrorKind = "timeout"
	AuthProtocol AuthErrorKind = "protocol"
)

// AuthError reports a failed bearer-token acquisition. The caller may retry;
// the flight request it was obtained for is never attempted.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token acquisition failed (%s): %v", e.Kind, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
