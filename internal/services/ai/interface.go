// File: internal/services/ai/interface.go
package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// CompletionProvider handles chat completions against the external
// endpoint. Failures are always typed *AIError values.
type CompletionProvider interface {
	GetChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}
