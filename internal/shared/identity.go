// File: internal/shared/identity.go
package shared

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated principal attached to a request.
type Identity struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// TokenResolver looks up the user owning an access token.
// Implementations return common.ErrNotFound when no user holds the token.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*Identity, error)
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

// Session is handed back to a client after a successful login.
type Session struct {
	Identity
	AccessToken string
}

// CredentialChecker verifies an email/password pair and returns the holder's session.
// Unknown emails and wrong passwords fail with the same error.
type CredentialChecker interface {
	CheckCredentials(ctx context.Context, email, password string) (*Session, error)
}
