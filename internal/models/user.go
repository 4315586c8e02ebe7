package models

import "time"

// User represents a user account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns a copy of u without credential material.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Session is the signed-in state of a single user. Record access is scoped
// to the session's user.
type Session struct {
	User User
}

// OwnerID is the id every record query is scoped to.
func (s Session) OwnerID() string {
	return s.User.ID
}
