package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrAllProvidersFailed indicates all providers failed to generate content
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrProviderTimeout marks a provider failure caused by a deadline or network timeout
	ErrProviderTimeout = errors.New("provider timeout")
)

// ProviderError names the provider behind a failed generation.
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

// wrapProviderError tags err with the provider name, and with ErrProviderTimeout when it timed out.
func wrapProviderError(name string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		err = fmt.Errorf("%w: %w", ErrProviderTimeout, err)
	}
	return &ProviderError{Provider: name, Err: err}
}
