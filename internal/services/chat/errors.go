// File: internal/services/chat/errors.go
package chat

import "fmt"

type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeCompletion ErrorType = "COMPLETION"
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	UserID    uint
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewStorageError(operation string, userID uint, cause error) *ChatError {
	return &ChatError{
		Type:      ErrTypeStorage,
		Operation: operation,
		Message:   "storage operation failed",
		UserID:    userID,
		Cause:     cause,
	}
}

// NewCompletionError wraps a failure from the completion endpoint. The
// conversation stays consistent: the user turn is already persisted and no
// assistant turn is written.
func NewCompletionError(userID uint, cause error) *ChatError {
	return &ChatError{
		Type:      ErrTypeCompletion,
		Operation: "completion",
		Message:   "completion endpoint request failed",
		UserID:    userID,
		Cause:     cause,
	}
}
