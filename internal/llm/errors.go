package llm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCredential is returned when a provider's credential is not
	// set in the environment at invocation time.
	ErrMissingCredential = errors.New("credential not set")

	// ErrEmptyResponse is returned when a backend answers with no content.
	ErrEmptyResponse = errors.New("empty response")

	// ErrAllProvidersExhausted is matched by errors.Is against
	// AllProvidersExhaustedError.
	ErrAllProvidersExhausted = errors.New("all providers exhausted")
)

// ProviderError wraps a failure from a single backend with its identity.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ProviderFailure is one entry in the ordered failure list carried by
// AllProvidersExhaustedError.
type ProviderFailure struct {
	Provider string
	Reason   string
}

// AllProvidersExhaustedError is returned when every provider in the
// invocation order failed. Failures are recorded in invocation order, one
// entry per attempted provider.
type AllProvidersExhaustedError struct {
	Failures []ProviderFailure
}

func (e *AllProvidersExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Provider, f.Reason))
	}
	return fmt.Sprintf("all %d providers failed to generate content (%s)",
		len(e.Failures), strings.Join(parts, "; "))
}

func (e *AllProvidersExhaustedError) Is(target error) bool {
	return target == ErrAllProvidersExhausted
}
