// Package dto provides the request and response bodies of the HTTP API.
package dto

import (
	"time"

	"github.com/tickbox/tickbox/internal/model"
)

// CredentialsRequest is the body of POST /signup and POST /signin.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse is returned after an account is created. It never carries the hash.
type SignupResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserResponse is the body of GET /user.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenResponse is the body of a successful signin.
type TokenResponse struct {
	Token string `json:"token"`
}

// ToSignupResponse converts a User model to SignupResponse.
func ToSignupResponse(u *model.User) *SignupResponse {
	return &SignupResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// ToUserResponse converts a User model to UserResponse.
func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{ID: u.ID, Email: u.Email}
}
