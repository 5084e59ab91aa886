// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Accounts are created either by username/password registration or through
// GitHub OAuth. Password accounts store a bcrypt hash; OAuth accounts carry
// the GitHub numeric user ID instead (GitHubID is 0 for password accounts).
//
// WHY json:"-" ON PasswordHash?
// The hash must never leave the server. The "-" tag tells encoding/json to
// skip the field entirely, so even a handler that serializes the whole struct
// cannot leak it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"` // unique, at least 3 characters
	Name         string    `json:"name"`     // display name, e.g. "Mario Rossi"
	PasswordHash string    `json:"-"`
	GitHubID     int64     `json:"-"` // 0 unless the account came from OAuth
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
