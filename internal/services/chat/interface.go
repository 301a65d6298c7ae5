// File: internal/services/chat/interface.go
package chat

import (
	"context"
)

// Service is the conversation surface exposed to callers.
type Service interface {
	AppendUserTurn(ctx context.Context, userID uint, content string) error
	RequestAssistantTurn(ctx context.Context, userID uint, content string) (string, error)
	History(ctx context.Context, userID uint, limit int) ([]Turn, error)
	ClearHistory(ctx context.Context, userID uint) error
	Count(ctx context.Context, userID uint) (int64, error)
	Summary(ctx context.Context, userID uint) (*ConversationSummary, error)
}
