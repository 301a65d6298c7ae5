// File: internal/services/user_services/errors.go
package user_services

import "errors"

// Validation and conflict errors are recoverable and surfaced verbatim.
var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrUsernameTaken    = errors.New("username already in use")

	// ErrInvalidCredentials is returned for BOTH an unknown username and a
	// wrong password. The shared message is a deliberate anti-enumeration
	// policy; do not split these cases.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
