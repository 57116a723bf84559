// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"fmt"

	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/platform/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAccessTokenTaken is returned by Create when the issued token collides with an existing one.
var ErrAccessTokenTaken = errors.New("access token already in use")

// profileColumns are the only columns UpdateProfile may write.
var profileColumns = map[string]struct{}{
	"first_name": {},
	"last_name":  {},
	"email":      {},
}

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByToken(ctx context.Context, token string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, token string, changes map[string]interface{}) (*User, error)
	List(ctx context.Context) ([]User, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts a new user record into the database.
func (r *gormRepository) Create(ctx context.Context, user *User) error {
	user.Email = NormalizeEmail(user.Email)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

// FindByEmail retrieves a user by their email address.
func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&userModel).Error
	if err != nil {
		return nil, translateReadError(err, "User not found with this email.")
	}
	return &userModel, nil
}

// FindByToken retrieves the user holding an access token. An empty token never matches.
func (r *gormRepository) FindByToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, common.ErrNotFound
	}
	var userModel User
	err := r.db.WithContext(ctx).Where("access_token = ?", token).First(&userModel).Error
	if err != nil {
		return nil, translateReadError(err, "User not found with this token.")
	}
	return &userModel, nil
}

// FindByID retrieves a user by their ID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error
	if err != nil {
		return nil, translateReadError(err, "User not found with this ID.")
	}
	return &userModel, nil
}

// UpdateProfile applies changes to the user holding token and returns the updated row.
// Only profile columns are accepted; password_hash and access_token are never written here.
func (r *gormRepository) UpdateProfile(ctx context.Context, token string, changes map[string]interface{}) (*User, error) {
	if token == "" {
		return nil, common.ErrNotFound
	}
	for column := range changes {
		if _, ok := profileColumns[column]; !ok {
			return nil, fmt.Errorf("column %q is not a profile column", column)
		}
	}
	if email, ok := changes["email"].(string); ok {
		changes["email"] = NormalizeEmail(email)
	}

	var updated User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("access_token = ?", token).First(&updated).Error; err != nil {
			return translateReadError(err, "User not found with this token.")
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&updated).Updates(changes).Error; err != nil {
			return translateWriteError(err)
		}
		return tx.Where("id = ?", updated.ID).First(&updated).Error
	})
	if err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return nil, err
		}
		return nil, common.ErrStore.Wrap(err)
	}
	return &updated, nil
}

// List returns every user ordered by creation time.
func (r *gormRepository) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, common.ErrStore.Wrap(err)
	}
	return users, nil
}

func translateReadError(err error, notFoundDetail string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.ErrNotFound.WithDetails(notFoundDetail)
	}
	return common.ErrStore.Wrap(err)
}

func translateWriteError(err error) error {
	switch {
	case database.IsUniqueViolation(err, "idx_users_email", "users.email"):
		return common.ErrDuplicateEmail
	case database.IsUniqueViolation(err, "idx_users_access_token", "users.access_token"):
		return ErrAccessTokenTaken
	default:
		return common.ErrStore.Wrap(err)
	}
}
