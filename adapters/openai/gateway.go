// Package openai provides the completion gateway implementation over the
// OpenAI chat-completion API.
//
// The gateway performs exactly one request per call and translates
// provider errors into postbot error codes; the retry discipline lives in
// postbot.ContentGenerator.
package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"

	postbot "github.com/zioncoderone/post-bot"
)

// Gateway implements postbot.CompletionGateway using the OpenAI API.
type Gateway struct {
	client *openai.Client
}

// New creates a Gateway authenticated with the given API key.
func New(apiKey string) *Gateway {
	return &Gateway{client: openai.NewClient(apiKey)}
}

// NewWithClient creates a Gateway over a pre-configured client, e.g. one
// pointed at a compatible self-hosted endpoint.
func NewWithClient(client *openai.Client) *Gateway {
	return &Gateway{client: client}
}

// Complete issues one chat-completion request and returns the generated
// text. Rate-limit rejections come back as RATE_LIMITED, everything else
// as GENERATION_ERROR; both are recoverable within the caller's retry
// budget.
func (g *Gateway) Complete(ctx context.Context, spec postbot.PromptSpec) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: spec.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: spec.System},
			{Role: openai.ChatMessageRoleUser, Content: spec.User},
		},
		MaxTokens:   spec.MaxTokens,
		Temperature: spec.Temperature,
	})
	if err != nil {
		return "", translateError(err)
	}

	if len(resp.Choices) == 0 {
		return "", postbot.NewError(postbot.ErrCodeGeneration, "completion response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// translateError maps provider errors onto postbot error codes.
func translateError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return postbot.RateLimited(err)
	}
	return postbot.NewErrorWithCause(postbot.ErrCodeGeneration, "completion request failed", err)
}
