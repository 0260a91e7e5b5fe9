package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrEmptyCompletion is returned when the model responds with no usable content.
var ErrEmptyCompletion = errors.New("empty completion")

// Completer is the capability the forum needs from the language-model provider:
// text in, JSON text out. Handlers and services depend on this interface so
// tests can substitute fakes.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string, temperature float32) (string, error)
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client calls an OpenAI-compatible chat-completion API.
type Client struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a completion client for the given model.
func NewClient(apiKey, model string, logger *zap.Logger) *Client {
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// CompleteJSON runs a single chat completion in JSON-object mode and returns
// the raw content string. Callers parse and validate the JSON themselves.
func (c *Client) CompleteJSON(ctx context.Context, system, user string, temperature float32) (string, error) {
	return c.complete(ctx, system, user, temperature, &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	})
}

// Complete runs a plain-text chat completion.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	return c.complete(ctx, system, user, 0, nil)
}

func (c *Client) complete(ctx context.Context, system, user string, temperature float32, format *openai.ChatCompletionResponseFormat) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:          c.model,
		Temperature:    temperature,
		ResponseFormat: format,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		c.logger.Warn("chat completion failed", zap.String("model", c.model), zap.Error(err))
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
