package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultBaseURL = "http://localhost:8000/v1"
	noAPIKey       = "not-needed"

	// A rewrite is a single short question.
	maxCompletionTokens = 64
)

// Prompt is one system/user exchange sent to the model.
type Prompt struct {
	System string
	User   string
}

// Completer returns the model's reply to a prompt.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// OpenAIClient implements Completer against an OpenAI-compatible
// chat completions endpoint.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIClient creates a client. Without options it targets a local
// server that needs no API key.
func NewOpenAIClient(opts ...Option) *OpenAIClient {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		apiKey:  noAPIKey,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	oc := openai.DefaultConfig(cfg.apiKey)
	oc.BaseURL = cfg.baseURL

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(oc),
		model:       cfg.model,
		temperature: cfg.temperature,
	}
}

// Complete sends p as a non-streaming chat completion and returns the first
// choice.
func (c *OpenAIClient) Complete(ctx context.Context, p Prompt) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.request(p))
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) request(p Prompt) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
		Temperature: c.temperature,
		MaxTokens:   maxCompletionTokens,
	}
}
