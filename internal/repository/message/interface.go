package message

import (
	"context"

	"github.com/lunaris-labs/converse/internal/domain"
)

// MessageRepository handles per-user conversation logs.
type MessageRepository interface {
	Append(ctx context.Context, userID uint, role, content string) (*domain.Message, error)
	FindByUserID(ctx context.Context, userID uint, limit int) ([]domain.Message, error)
	DeleteByUserID(ctx context.Context, userID uint) error
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}
