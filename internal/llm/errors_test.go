package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/revrost/go-openrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyOpenAIQuota(t *testing.T) {
	err := classifyOpenAIError(&openai.Error{StatusCode: 429, Message: "too many requests"})
	assert.True(t, IsQuotaError(err))
	assert.False(t, IsCredentialError(err))

	err = classifyOpenAIError(&openai.Error{StatusCode: 400, Code: "insufficient_quota", Message: "quota exhausted"})
	assert.True(t, IsQuotaError(err))
}

func TestClassifyOpenAICredential(t *testing.T) {
	err := classifyOpenAIError(&openai.Error{StatusCode: 401, Message: "bad key"})
	assert.True(t, IsCredentialError(err))
	assert.False(t, IsQuotaError(err))
}

func TestClassifyOpenAIGeneric(t *testing.T) {
	cause := errors.New("connection reset")
	err := classifyOpenAIError(cause)
	require.Error(t, err)
	assert.False(t, IsQuotaError(err))
	assert.False(t, IsCredentialError(err))
	assert.ErrorIs(t, err, cause)
}

func TestClassifyOpenRouterQuota(t *testing.T) {
	apiErr := &openrouter.APIError{HTTPStatusCode: 402, Message: "payment required"}
	err := classifyOpenRouterError(fmt.Errorf("call failed: %w", apiErr))
	assert.True(t, IsQuotaError(err))
}

func TestClassifyOpenRouterCredential(t *testing.T) {
	apiErr := &openrouter.APIError{HTTPStatusCode: 401, Code: "invalid_api_key", Message: "invalid key"}
	err := classifyOpenRouterError(apiErr)
	assert.True(t, IsCredentialError(err))
}

func TestQuotaErrorMessage(t *testing.T) {
	err := &QuotaError{Provider: "openai", Message: "exhausted"}
	assert.Contains(t, err.Error(), "openai")
	assert.Contains(t, err.Error(), "exhausted")
}
