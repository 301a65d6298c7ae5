// File: internal/services/chat/chat_service.go
package chat

import (
	"context"

	"github.com/lunaris-labs/converse/internal/domain"
	"github.com/lunaris-labs/converse/internal/repository/message"
	"github.com/lunaris-labs/converse/internal/services/ai"
)

// ChatService orchestrates conversation turns: it persists user input,
// assembles context, calls the completion provider, and persists the
// assistant's reply.
type ChatService struct {
	messageRepo message.MessageRepository
	builder     *ContextBuilder
	provider    ai.CompletionProvider
	logger      Logger
}

func NewChatService(messageRepo message.MessageRepository, provider ai.CompletionProvider, logger Logger) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		builder:     NewContextBuilder(messageRepo),
		provider:    provider,
		logger:      logger,
	}
}

// AppendUserTurn persists a user message without contacting the
// completion endpoint.
func (s *ChatService) AppendUserTurn(ctx context.Context, userID uint, content string) error {
	if content == "" {
		return NewValidationError("append_user_turn", "message content cannot be empty")
	}

	if _, err := s.messageRepo.Append(ctx, userID, domain.RoleUser, content); err != nil {
		return NewStorageError("append_user_turn", userID, err)
	}
	return nil
}

// RequestAssistantTurn runs one full conversation turn. The user message
// is persisted first; if the completion request then fails, NO assistant
// turn is written and the user message remains in the log. A synthetic
// assistant message is never persisted on failure.
func (s *ChatService) RequestAssistantTurn(ctx context.Context, userID uint, content string) (string, error) {
	if err := s.AppendUserTurn(ctx, userID, content); err != nil {
		return "", err
	}

	messages, err := s.builder.Build(ctx, userID)
	if err != nil {
		return "", err
	}

	reply, err := s.provider.GetChatCompletion(ctx, messages)
	if err != nil {
		s.logger.Error("completion request failed",
			"user_id", userID,
			"context_length", len(messages),
			"error", err)
		return "", NewCompletionError(userID, err)
	}

	if _, err := s.messageRepo.Append(ctx, userID, domain.RoleAssistant, reply); err != nil {
		return "", NewStorageError("append_assistant_turn", userID, err)
	}

	s.logger.Debug("assistant turn completed",
		"user_id", userID,
		"context_length", len(messages),
		"reply_length", len(reply))

	return reply, nil
}

// History returns the user's log ascending by timestamp. A positive limit
// keeps the OLDEST entries, matching the store's literal behavior.
func (s *ChatService) History(ctx context.Context, userID uint, limit int) ([]Turn, error) {
	messages, err := s.messageRepo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, NewStorageError("history", userID, err)
	}

	turns := make([]Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, Turn{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}
	return turns, nil
}

// ClearHistory deletes the user's entire log. Not reversible.
func (s *ChatService) ClearHistory(ctx context.Context, userID uint) error {
	if err := s.messageRepo.DeleteByUserID(ctx, userID); err != nil {
		return NewStorageError("clear_history", userID, err)
	}

	s.logger.Info("conversation history cleared", "user_id", userID)
	return nil
}

// Count returns the number of messages in the user's log.
func (s *ChatService) Count(ctx context.Context, userID uint) (int64, error) {
	count, err := s.messageRepo.CountByUserID(ctx, userID)
	if err != nil {
		return 0, NewStorageError("count", userID, err)
	}
	return count, nil
}

// Summary reports conversation statistics together with the oldest
// retained message.
func (s *ChatService) Summary(ctx context.Context, userID uint) (*ConversationSummary, error) {
	count, err := s.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &ConversationSummary{
		TotalMessages: count,
		HasHistory:    count > 0,
	}

	if count > 0 {
		oldest, err := s.History(ctx, userID, 1)
		if err != nil {
			return nil, err
		}
		if len(oldest) > 0 {
			summary.FirstMessage = &oldest[0]
		}
	}

	return summary, nil
}
