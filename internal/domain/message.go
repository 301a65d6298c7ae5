// File: internal/domain/message.go
package domain

import "time"

// Message roles. Only these two are ever written.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a user's conversation log.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_user_timestamp,priority:1"`
	Role      string    `json:"role" gorm:"not null"` // "user" or "assistant"
	Content   string    `json:"content" gorm:"not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index:idx_user_timestamp,priority:2"`
}

func (Message) TableName() string { return "conversations" }
