// File: internal/auth/guard.go
package auth

import (
	"context"
	"errors"

	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/shared"

	"go.uber.org/zap"
)

// Guard resolves the Authorization header of a request to an identity.
// It keeps no state between calls; every request is checked against the store.
type Guard struct {
	resolver shared.TokenResolver
	logger   *zap.Logger
}

// NewGuard creates a new authentication guard.
func NewGuard(resolver shared.TokenResolver, logger *zap.Logger) *Guard {
	return &Guard{resolver: resolver, logger: logger.Named("auth_guard")}
}

// Authenticate returns the identity owning the token in header.
// Missing or unknown tokens yield ErrUnauthorized; store failures yield ErrStore.
func (g *Guard) Authenticate(ctx context.Context, header string) (*shared.Identity, error) {
	token := common.ParseAuthorizationHeader(header)
	if token == "" {
		return nil, common.ErrUnauthorized.WithDetails("Authorization header is required.")
	}

	identity, err := g.resolver.ResolveToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		g.logger.Error("Token lookup failed", zap.Error(err))
		if apiErr, ok := common.IsAPIError(err); ok && errors.Is(apiErr, common.ErrStore) {
			return nil, apiErr
		}
		return nil, common.ErrStore.Wrap(err)
	}
	return identity, nil
}
