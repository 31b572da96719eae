package models

import "time"

// Account roles. Managers have full CRUD access; Users have read and
// self-service access only.
const (
	RoleManager = "Manager"
	RoleUser    = "User"
)

// Account represents a login identity
type Account struct {
	ID            int64
	Email         string
	PasswordHash  string
	Role          string
	FirstName     string
	LastName      string
	OAuthProvider string
	OAuthSubject  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsManager reports whether the account holds the Manager role
func (a *Account) IsManager() bool {
	return a.Role == RoleManager
}

// DisplayName returns a human-friendly name for the account
func (a *Account) DisplayName() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	default:
		return a.Email
	}
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
