package auth

import (
	"errors"
	"time"
)

// ErrNotAuthenticated is returned by operations that require a live session.
// It is a local precondition check and fails before any profile I/O.
var ErrNotAuthenticated = errors.New("not authenticated")

// User is a household member profile.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	HouseholdName string    `json:"householdName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProfileUpdate carries a partial profile update; nil fields are unchanged.
type ProfileUpdate struct {
	Name          *string
	HouseholdName *string
}

// Session is an authenticated browser session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionEvent is delivered to watchers whenever the session state changes.
// Session is nil on sign-out.
type SessionEvent struct {
	Session *Session
}
