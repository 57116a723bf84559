// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"strings"
	"sync"

	"torslanda_locals_backend/internal/auth"
	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/platform/crypto"

	"go.uber.org/zap"
)

// maxTokenAttempts bounds re-issuing after an access-token collision.
const maxTokenAttempts = 3

// Service defines the interface for user-related business logic.
type Service interface {
	Register(ctx context.Context, req CreateUserRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByToken(ctx context.Context, token string) (*User, error)
	UpdateProfile(ctx context.Context, token string, req UpdateProfileRequest) (*User, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo   Repository
	hasher auth.Hasher
	issuer crypto.TokenIssuer
	logger *zap.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, hasher auth.Hasher, issuer crypto.TokenIssuer, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		logger: logger.Named("user_service"),
	}
}

// Register validates the request, hashes the password, issues an access token and stores the user.
func (s *ServiceImplementation) Register(ctx context.Context, req CreateUserRequest) (*User, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = NormalizeEmail(req.Email)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	newUser := &User{FirstName: req.FirstName, LastName: req.LastName, Email: req.Email}
	if err := newUser.SetPassword(s.hasher, req.Password); err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return nil, err
		}
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, common.ErrInternalServer.Wrap(err)
	}

	var err error
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		if newUser.AccessToken, err = s.issuer.Issue(); err != nil {
			s.logger.Error("Failed to issue access token", zap.Error(err))
			return nil, common.ErrInternalServer.Wrap(err)
		}
		err = s.repo.Create(ctx, newUser)
		if !errors.Is(err, ErrAccessTokenTaken) {
			break
		}
		s.logger.Warn("Access token collision, re-issuing", zap.Int("attempt", attempt))
	}
	if err != nil {
		if errors.Is(err, ErrAccessTokenTaken) {
			return nil, common.ErrStore.Wrap(err)
		}
		if errors.Is(err, common.ErrDuplicateEmail) {
			s.logger.Info("Registration rejected, email taken", zap.String("email", req.Email))
		}
		return nil, err
	}

	s.logger.Info("User registered successfully", zap.String("userID", newUser.ID.String()))
	return newUser, nil
}

// Login returns the user whose email and password match. Any mismatch yields ErrLoginFailed.
func (s *ServiceImplementation) Login(ctx context.Context, email, password string) (*User, error) {
	dbUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Spend the same bcrypt work as a real comparison.
			s.hasher.Verify(password, s.dummyHash())
			s.logger.Info("Login failed", zap.String("email", NormalizeEmail(email)))
			return nil, common.ErrLoginFailed
		}
		s.logger.Error("Error finding user by email during login", zap.Error(err))
		return nil, err
	}

	if !s.hasher.Verify(password, dbUser.PasswordHash) {
		s.logger.Info("Login failed", zap.String("userID", dbUser.ID.String()))
		return nil, common.ErrLoginFailed
	}

	s.logger.Info("User logged in successfully", zap.String("userID", dbUser.ID.String()))
	return dbUser, nil
}

// FindByEmail returns ErrNotFound when no user has email.
func (s *ServiceImplementation) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// FindByToken returns ErrNotFound when no user holds token.
func (s *ServiceImplementation) FindByToken(ctx context.Context, token string) (*User, error) {
	return s.repo.FindByToken(ctx, token)
}

// UpdateProfile changes the profile of the user holding token.
// An unresolvable token is ErrUnauthorized and leaves every record untouched.
func (s *ServiceImplementation) UpdateProfile(ctx context.Context, token string, req UpdateProfileRequest) (*User, error) {
	if _, err := s.repo.FindByToken(ctx, token); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	if req.Email != nil {
		normalized := NormalizeEmail(*req.Email)
		req.Email = &normalized
	}
	if req.FirstName != nil {
		trimmed := strings.TrimSpace(*req.FirstName)
		req.FirstName = &trimmed
	}
	if req.LastName != nil {
		trimmed := strings.TrimSpace(*req.LastName)
		req.LastName = &trimmed
	}
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	changes := make(map[string]interface{}, 3)
	if req.FirstName != nil {
		changes["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		changes["last_name"] = *req.LastName
	}
	if req.Email != nil {
		changes["email"] = *req.Email
	}

	updated, err := s.repo.UpdateProfile(ctx, token, changes)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}
	s.logger.Info("User profile updated", zap.String("userID", updated.ID.String()), zap.Int("fields", len(changes)))
	return updated, nil
}

// ListUsers returns every user without credentials.
func (s *ServiceImplementation) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out, nil
}

func (s *ServiceImplementation) dummyHash() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("no-such-user-password")
		if err != nil {
			s.logger.Warn("Could not prepare dummy password hash", zap.Error(err))
			return
		}
		s.dummyDigest = digest
	})
	return s.dummyDigest
}
