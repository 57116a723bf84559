// File: internal/user/adapter.go
package user

import (
	"context"

	"torslanda_locals_backend/internal/shared"
)

var (
	_ shared.TokenResolver     = (*ServiceImplementation)(nil)
	_ shared.CredentialChecker = (*ServiceImplementation)(nil)
)

// ToIdentity converts a stored user to the identity attached to requests.
func ToIdentity(dbUser *User) *shared.Identity {
	if dbUser == nil {
		return nil
	}
	return &shared.Identity{
		ID:        dbUser.ID,
		FirstName: dbUser.FirstName,
		LastName:  dbUser.LastName,
		Email:     dbUser.Email,
	}
}

// ResolveToken lets the authentication guard look users up by access token.
func (s *ServiceImplementation) ResolveToken(ctx context.Context, token string) (*shared.Identity, error) {
	dbUser, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return ToIdentity(dbUser), nil
}

// CheckCredentials backs POST /sessions.
func (s *ServiceImplementation) CheckCredentials(ctx context.Context, email, password string) (*shared.Session, error) {
	dbUser, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &shared.Session{Identity: *ToIdentity(dbUser), AccessToken: dbUser.AccessToken}, nil
}
