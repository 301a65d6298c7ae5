// File: internal/services/chat/context.go
package chat

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lunaris-labs/converse/internal/domain"
	"github.com/lunaris-labs/converse/internal/repository/message"
)

// ContextBuilder renders a user's stored history into the ordered message
// sequence the completion endpoint expects. It is stateless: every call
// rebuilds the sequence from storage in full, so concurrent callers always
// see a consistent log at the cost of O(history) work per turn. There is
// no truncation or windowing of long histories.
type ContextBuilder struct {
	messageRepo message.MessageRepository
}

func NewContextBuilder(messageRepo message.MessageRepository) *ContextBuilder {
	return &ContextBuilder{messageRepo: messageRepo}
}

// Build returns the user's full log in provider format. The stored "user"
// role passes through; any other stored role collapses to the provider's
// assistant role. Only the two roles are ever written, so nothing is lost.
func (b *ContextBuilder) Build(ctx context.Context, userID uint) ([]openai.ChatCompletionMessage, error) {
	history, err := b.messageRepo.FindByUserID(ctx, userID, 0)
	if err != nil {
		return nil, NewStorageError("build_context", userID, err)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		role := openai.ChatMessageRoleAssistant
		if msg.Role == domain.RoleUser {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	return messages, nil
}
