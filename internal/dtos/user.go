// File: internal/dtos/user.go
package dtos

import "time"

// UserSummary is the management view of an account. The password hash is
// deliberately absent.
type UserSummary struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
