package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProviderUnavailable indicates the provider could not produce an answer
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderTimeout indicates a provider request timed out
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrEmptyResponse indicates the provider answered with no text
	ErrEmptyResponse = errors.New("empty provider response")

	// ErrInvalidRequest indicates the request is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnknownProvider indicates a tier names a provider kind that does not exist
	ErrUnknownProvider = errors.New("unknown provider")
)

// ProviderError wraps provider-specific errors
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

// wrapError tags err with the provider name and the matching sentinel.
// Deadline errors map to ErrProviderTimeout, everything else to ErrProviderUnavailable.
func wrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ProviderError{Provider: provider, Err: fmt.Errorf("%w: %w", ErrProviderTimeout, err)}
	}
	return &ProviderError{Provider: provider, Err: fmt.Errorf("%w: %w", ErrProviderUnavailable, err)}
}

func checkText(provider, text string) error {
	if strings.TrimSpace(text) == "" {
		return &ProviderError{Provider: provider, Err: ErrEmptyResponse}
	}
	return nil
}

func validateRequest(req *Request) error {
	if req == nil || strings.TrimSpace(req.Prompt) == "" {
		return ErrInvalidRequest
	}
	return nil
}
