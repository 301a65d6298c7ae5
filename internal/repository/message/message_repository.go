// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/lunaris-labs/converse/internal/domain"
)

type gormMessageRepository struct {
	db *gorm.DB

	// Appends are serialized so readers never observe a non-monotonic
	// sequence; lastStamp clamps the insertion time per user in case the
	// wall clock steps backwards between appends.
	mu        sync.Mutex
	lastStamp map[uint]time.Time
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{
		db:        db,
		lastStamp: make(map[uint]time.Time),
	}
}

// Append stamps the current time and inserts the message. The stamp is
// guaranteed to be >= the previous stamp for the same user.
func (r *gormMessageRepository) Append(ctx context.Context, userID uint, role, content string) (*domain.Message, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}
	if role != domain.RoleUser && role != domain.RoleAssistant {
		return nil, errors.New("invalid message role")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if last, ok := r.lastStamp[userID]; ok && now.Before(last) {
		now = last
	}

	msg := &domain.Message{
		UserID:    userID,
		Role:      role,
		Content:   content,
		Timestamp: now,
	}

	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		// Secure logging - no conversation content exposed
		log.Printf("[MessageRepository] Database error during message creation for user ID %d: %v", userID, err)
		return nil, errors.New("database error creating message")
	}
	r.lastStamp[userID] = now

	return msg, nil
}

// FindByUserID returns the user's log ascending by timestamp, ties broken
// by insertion order. A positive limit truncates from the OLDEST end; this
// mirrors the long-standing behavior callers depend on, it is not a
// most-recent-N window.
func (r *gormMessageRepository) FindByUserID(ctx context.Context, userID uint, limit int) ([]domain.Message, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp asc, id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []domain.Message
	if err := query.Find(&messages).Error; err != nil {
		log.Printf("[MessageRepository] Database error retrieving messages for user ID %d: %v", userID, err)
		return nil, errors.New("database error retrieving messages")
	}

	return messages, nil
}

// DeleteByUserID removes everything visible at call time. A message
// appended concurrently with the delete may survive; that race is
// documented and accepted.
func (r *gormMessageRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if userID == 0 {
		return errors.New("invalid user ID")
	}

	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Message{})
	if result.Error != nil {
		log.Printf("[MessageRepository] Database error clearing messages for user ID %d: %v", userID, result.Error)
		return errors.New("database error clearing messages")
	}

	log.Printf("[MessageRepository] Cleared %d messages for user ID %d", result.RowsAffected, userID)
	return nil
}

func (r *gormMessageRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, errors.New("invalid user ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for user ID %d: %v", userID, err)
		return 0, errors.New("database error counting messages")
	}

	return count, nil
}
