package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revrost/go-openrouter"
	"github.com/revrost/go-openrouter/jsonschema"
)

// Client wraps the OpenRouter client for the structured-output calls
// (brand selection, category extraction, comparison analysis).
type Client struct {
	openRouterClient *openrouter.Client
	model            string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = "openai/gpt-4.1"
	}
	return &Client{
		openRouterClient: openrouter.NewClient(apiKey),
		model:            model,
	}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	request := openrouter.ChatCompletionRequest{
		Model: c.model,
		Messages: []openrouter.ChatCompletionMessage{
			{
				Role:    openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{Text: prompt},
			},
		},
	}

	response, err := c.openRouterClient.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", classifyOpenRouterError(err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return response.Choices[0].Message.Content.Text, nil
}

// CompleteStructured completes with a JSON schema generated from the result
// type and unmarshals the response directly into it. The result parameter
// must be a pointer to a struct.
func (c *Client) CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, result interface{}) error {
	payload, err := c.CompleteStructuredRaw(ctx, systemPrompt, userPrompt, result)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(payload, result); err != nil {
		return fmt.Errorf("failed to unmarshal structured response: %w", err)
	}

	return nil
}

// CompleteStructuredRaw completes with a JSON schema generated from the
// shape type and returns the raw payload, so callers can validate it
// against a schema of their own before parsing.
func (c *Client) CompleteStructuredRaw(ctx context.Context, systemPrompt, userPrompt string, shape interface{}) ([]byte, error) {
	schema, err := jsonschema.GenerateSchemaForType(shape)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	request := openrouter.ChatCompletionRequest{
		Model: c.model,
		Messages: []openrouter.ChatCompletionMessage{
			{
				Role:    openrouter.ChatMessageRoleSystem,
				Content: openrouter.Content{Text: systemPrompt},
			},
			{
				Role:    openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{Text: userPrompt},
			},
		},
		ResponseFormat: &openrouter.ChatCompletionResponseFormat{
			Type: openrouter.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openrouter.ChatCompletionResponseFormatJSONSchema{
				Name:   "result",
				Schema: schema,
				Strict: false, // Some models don't support strict mode
			},
		},
	}

	response, err := c.openRouterClient.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, classifyOpenRouterError(err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	return []byte(response.Choices[0].Message.Content.Text), nil
}
