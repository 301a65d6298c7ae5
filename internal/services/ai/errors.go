// File: internal/services/ai/errors.go
package ai

import "fmt"

type ErrorType string

const (
	ErrTypeConfig        ErrorType = "CONFIG"
	ErrTypeNetwork       ErrorType = "NETWORK"
	ErrTypeAuthorization ErrorType = "AUTHORIZATION"
	ErrTypeQuota         ErrorType = "QUOTA"
	ErrTypeProvider      ErrorType = "PROVIDER"
	ErrTypeMalformed     ErrorType = "MALFORMED"
)

type AIError struct {
	Type      ErrorType
	Code      int
	Message   string
	Operation string
	Cause     error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AIError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *AIError {
	return &AIError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewMalformedError(operation, msg string) *AIError {
	return &AIError{Type: ErrTypeMalformed, Operation: operation, Message: msg}
}
