// File: internal/auth/model.go
package auth

import "github.com/google/uuid"

// LoginRequest defines the structure for login requests.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is returned by a successful login.
type SessionResponse struct {
	ID          uuid.UUID `json:"id"`
	AccessToken string    `json:"accessToken"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
}
