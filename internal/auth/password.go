// File: internal/auth/password.go
package auth

import (
	"fmt"

	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the most bcrypt will consume.
const maxPasswordBytes = 72

// Hasher turns plaintext passwords into one-way digests and checks them.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// BcryptHasher implements Hasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher clamps cost into bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// ProvideHasher builds the hasher from BCRYPT_COST.
func ProvideHasher(cfg *config.Config) Hasher {
	return NewBcryptHasher(cfg.BcryptCost)
}

// Hash returns a salted digest. Each call yields a different digest for the same input.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", common.ValidationError("password", fmt.Sprintf("The password field may not be longer than %d bytes.", maxPasswordBytes))
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests never match.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
