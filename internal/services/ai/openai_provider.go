// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to any OpenAI-compatible completion endpoint; in
// the default configuration that is the Groq API.
type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// GetChatCompletion sends the ordered message sequence and returns the
// generated text. The request is bounded by the configured timeout.
func (p *OpenAIProvider) GetChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       p.config.Model,
			Messages:    messages,
			Temperature: p.config.Temperature,
			MaxTokens:   p.config.MaxTokens,
		},
	)
	if err != nil {
		return "", p.classifyError("completion", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", NewMalformedError("completion", "empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}

// classifyError maps transport and API failures onto the error taxonomy.
func (p *OpenAIProvider) classifyError(operation string, err error) *AIError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		aiErr := &AIError{
			Operation: operation,
			Code:      apiErr.HTTPStatusCode,
			Message:   apiErr.Message,
			Cause:     err,
		}
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden:
			aiErr.Type = ErrTypeAuthorization
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			aiErr.Type = ErrTypeQuota
		default:
			aiErr.Type = ErrTypeProvider
		}
		return aiErr
	}

	// No structured API error: connection refused, DNS failure, timeout.
	return &AIError{
		Type:      ErrTypeNetwork,
		Operation: operation,
		Message:   "request to completion endpoint failed",
		Cause:     err,
	}
}
