package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/revrost/go-openrouter"
)

// ErrMissingCredential signals that a provider API key was not configured.
// It is fatal at startup and never retried.
var ErrMissingCredential = errors.New("missing API credential")

// QuotaError reports that the provider refused the request for quota or
// rate-limit reasons. Surfaced to callers as a distinct condition.
type QuotaError struct {
	Provider string
	Message  string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %s", e.Provider, e.Message)
}

// CredentialError reports that the provider rejected the configured API key.
type CredentialError struct {
	Provider string
	Message  string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s rejected credentials: %s", e.Provider, e.Message)
}

// IsQuotaError reports whether err is a quota/rate-limit failure.
func IsQuotaError(err error) bool {
	var qe *QuotaError
	return errors.As(err, &qe)
}

// IsCredentialError reports whether err is an invalid-credential failure.
func IsCredentialError(err error) bool {
	var ce *CredentialError
	return errors.As(err, &ce)
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("openai request failed: %w", err)
	}

	switch {
	case apiErr.StatusCode == 402 || apiErr.StatusCode == 429 ||
		strings.EqualFold(apiErr.Code, "insufficient_quota") ||
		strings.EqualFold(apiErr.Code, "rate_limit_exceeded"):
		return &QuotaError{Provider: "openai", Message: apiErr.Message}
	case apiErr.StatusCode == 401 || apiErr.StatusCode == 403 ||
		strings.EqualFold(apiErr.Code, "invalid_api_key"):
		return &CredentialError{Provider: "openai", Message: apiErr.Message}
	}

	return fmt.Errorf("openai request failed: %w", err)
}

func classifyOpenRouterError(err error) error {
	var apiErr *openrouter.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("openrouter request failed: %w", err)
	}

	code, _ := apiErr.Code.(string)
	switch {
	case apiErr.HTTPStatusCode == 402 || apiErr.HTTPStatusCode == 429 ||
		strings.EqualFold(code, "insufficient_quota"):
		return &QuotaError{Provider: "openrouter", Message: apiErr.Message}
	case apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403 ||
		strings.EqualFold(code, "invalid_api_key"):
		return &CredentialError{Provider: "openrouter", Message: apiErr.Message}
	}

	return fmt.Errorf("openrouter request failed: %w", err)
}
