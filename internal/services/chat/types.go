// File: internal/services/chat/types.go
package chat

import "time"

// Logger defines the logging interface used across chat services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Turn is a single history entry as exposed to callers.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationSummary describes the state of a user's log.
type ConversationSummary struct {
	TotalMessages int64 `json:"total_messages"`
	HasHistory    bool  `json:"has_history"`
	// Oldest retained message, if any.
	FirstMessage *Turn `json:"first_message,omitempty"`
}
