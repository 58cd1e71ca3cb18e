package domain

import "time"

// Identity is the authenticated caller resolved from a session token.
// It is scoped to a single request and never carries the password hash.
type Identity struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
