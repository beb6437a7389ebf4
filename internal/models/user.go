package models

import "time"

// User represents an administrator identity.
type User struct {
	ID           string     `json:"id"`         // UUID
	Username     string     `json:"username"`   // unique login name
	PasswordHash string     `json:"-"`          // bcrypt hash, never serialized or logged
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"` // nil until first login
}
