// Package model defines domain entities for the application.
package model

import "time"

// User is an account that owns todos.
// PasswordHash never leaves the service layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the authenticated caller decoded from a session token.
// It is injected into the request context by the auth middleware.
type Identity struct {
	UserID string
	Email  string
}
