// File: internal/user/model.go
package user

import (
	"strings"
	"time"

	"torslanda_locals_backend/internal/auth"
	"torslanda_locals_backend/internal/common"

	"github.com/google/uuid"
)

// User represents the user model in the database.
type User struct {
	common.BaseModel
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	AccessToken  string `gorm:"type:text;not null;uniqueIndex:idx_users_access_token" json:"-"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// SetPassword is the only way a plaintext password reaches a User.
func (u *User) SetPassword(hasher auth.Hasher, plaintext string) error {
	digest, err := hasher.Hash(plaintext)
	if err != nil {
		return err
	}
	u.PasswordHash = digest
	return nil
}

// NormalizeEmail makes email comparisons case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// CreateUserRequest defines the structure for creating a new user.
type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=100"`
	LastName  string `json:"lastName" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"` // bcrypt max is 72 bytes
}

// UpdateProfileRequest carries the profile fields a user may change. Nil means unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=2,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
}

// RegisterResponse is returned from POST /users.
type RegisterResponse struct {
	ID          uuid.UUID `json:"id"`
	AccessToken string    `json:"accessToken"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUserResponse converts a User model to a UserResponse DTO without credentials.
func ToUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
