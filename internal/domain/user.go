package domain

import "time"

// User is the stored account record, including the credential hash.
type User struct {
	ID                  string
	Username            string
	Email               string
	PasswordHash        string
	IsAdmin             bool
	FailedLoginAttempts int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Identity returns the user without its credential hash.
func (u *User) Identity() *Identity {
	if u == nil {
		return nil
	}
	return &Identity{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
