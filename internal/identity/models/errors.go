package models

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	id "nameplate/pkg/domain"
	dErrors "nameplate/pkg/domain-errors"
	"nameplate/pkg/platform/circuit"
)

// ErrorCategory is the normalized failure taxonomy shared by every source.
type ErrorCategory string

const (
	// ErrorTimeout indicates the backend took too long to respond.
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the backend returned invalid or malformed data.
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorProviderOutage indicates the backend is unreachable or returned a server error.
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorRateLimited indicates the backend or the local limiter refused the call.
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorCircuitOpen indicates calls were short-circuited after repeated failures.
	ErrorCircuitOpen ErrorCategory = "circuit_open"

	ErrorInternal ErrorCategory = "internal"
)

// Retryable reports whether a later attempt could plausibly succeed.
func (c ErrorCategory) Retryable() bool {
	switch c {
	case ErrorTimeout, ErrorProviderOutage, ErrorRateLimited, ErrorCircuitOpen:
		return true
	default:
		return false
	}
}

// Sentinel errors for common cases.
var (
	ErrChainNotRegistered = errors.New("chain not registered")
	ErrNoNameService      = errors.New("no name service configured")
	ErrAllSourcesFailed   = errors.New("all identity sources failed")

	ErrMalformedResponse = errors.New("malformed backend response")
	ErrRateLimited       = errors.New("rate limited")
	ErrCircuitOpen       = circuit.ErrOpen
)

// ConfigError reports a chain that cannot be served. It is fatal for the call.
type ConfigError struct {
	ChainID id.ChainID
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("chain %d: %v", e.ChainID, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ResolutionError wraps a name or avatar backend failure.
type ResolutionError struct {
	Source     Source
	Category   ErrorCategory
	ChainID    id.ChainID
	Underlying error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s resolution on chain %d [%s]: %v", e.Source, e.ChainID, e.Category, e.Underlying)
}

func (e *ResolutionError) Unwrap() error {
	return e.Underlying
}

// NewResolutionError categorizes cause and wraps it.
func NewResolutionError(source Source, chainID id.ChainID, cause error) *ResolutionError {
	return &ResolutionError{
		Source:     source,
		Category:   CategoryOf(cause),
		ChainID:    chainID,
		Underlying: cause,
	}
}

// AttestationFetchError wraps an attestation index failure.
type AttestationFetchError struct {
	Category   ErrorCategory
	ChainID    id.ChainID
	Endpoint   string
	Underlying error
}

func (e *AttestationFetchError) Error() string {
	return fmt.Sprintf("attestations on chain %d [%s]: %v", e.ChainID, e.Category, e.Underlying)
}

func (e *AttestationFetchError) Unwrap() error {
	return e.Underlying
}

// AggregationError summarizes a resolution where every attempted source failed.
type AggregationError struct {
	Address id.Address
	ChainID id.ChainID
	Causes  map[Source]error
}

func (e *AggregationError) Error() string {
	sources := slices.Sorted(maps.Keys(e.Causes))
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		parts = append(parts, fmt.Sprintf("%s: %v", s, e.Causes[s]))
	}
	return fmt.Sprintf("resolve %s on chain %d: %v (%s)", e.Address.Hex(), e.ChainID, ErrAllSourcesFailed, strings.Join(parts, "; "))
}

// Unwrap exposes the sentinel and every cause to errors.Is and errors.As.
func (e *AggregationError) Unwrap() []error {
	errs := []error{ErrAllSourcesFailed}
	for _, s := range slices.Sorted(maps.Keys(e.Causes)) {
		errs = append(errs, e.Causes[s])
	}
	return errs
}

// CategoryOf normalizes an arbitrary error into the taxonomy.
func CategoryOf(err error) ErrorCategory {
	if err == nil {
		return ErrorInternal
	}
	var re *ResolutionError
	if errors.As(err, &re) {
		return re.Category
	}
	var fe *AttestationFetchError
	if errors.As(err, &fe) {
		return fe.Category
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ErrorInternal
	}
	switch {
	case errors.Is(err, ErrMalformedResponse):
		return ErrorBadData
	case errors.Is(err, ErrRateLimited):
		return ErrorRateLimited
	case errors.Is(err, ErrCircuitOpen):
		return ErrorCircuitOpen
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTimeout
	case errors.Is(err, context.Canceled):
		return ErrorTimeout
	}
	return ErrorProviderOutage
}

// IsRetryable reports whether err is worth retrying by a caller.
func IsRetryable(err error) bool {
	var ae *AggregationError
	if errors.As(err, &ae) {
		for _, cause := range ae.Causes {
			if CategoryOf(cause).Retryable() {
				return true
			}
		}
		return false
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return false
	}
	return CategoryOf(err).Retryable()
}

// ToDomainError maps identity failures to transport-safe coded errors.
func ToDomainError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		if errors.Is(err, ErrChainNotRegistered) {
			return dErrors.Wrap(err, dErrors.CodeChainNotRegistered, fmt.Sprintf("chain %d is not registered", ce.ChainID))
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("chain %d is misconfigured", ce.ChainID))
	}
	var ae *AggregationError
	if errors.As(err, &ae) {
		return dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "all identity sources failed")
	}
	var fe *AttestationFetchError
	if errors.As(err, &fe) {
		if fe.Category == ErrorTimeout {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "attestation index timed out")
		}
		return dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "attestation index unavailable")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "identity resolution timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "internal error")
}
