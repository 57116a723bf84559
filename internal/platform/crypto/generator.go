// File: internal/platform/crypto/generator.go
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"torslanda_locals_backend/internal/config"
)

// TokenIssuer produces opaque access tokens.
type TokenIssuer interface {
	Issue() (string, error)
}

// RandomTokenIssuer hex-encodes n bytes read from a cryptographic source.
type RandomTokenIssuer struct {
	source io.Reader
	n      int
}

// NewRandomTokenIssuer reads from crypto/rand.
func NewRandomTokenIssuer(n int) *RandomTokenIssuer {
	return NewRandomTokenIssuerWithSource(rand.Reader, n)
}

// NewRandomTokenIssuerWithSource lets tests inject the entropy source.
func NewRandomTokenIssuerWithSource(source io.Reader, n int) *RandomTokenIssuer {
	if n < config.MinAccessTokenBytes {
		n = config.MinAccessTokenBytes
	}
	return &RandomTokenIssuer{source: source, n: n}
}

// ProvideTokenIssuer builds the issuer from ACCESS_TOKEN_BYTES.
func ProvideTokenIssuer(cfg *config.Config) TokenIssuer {
	return NewRandomTokenIssuer(cfg.AccessTokenBytes)
}

// Issue returns a token of exactly 2*n hex characters.
func (i *RandomTokenIssuer) Issue() (string, error) {
	b := make([]byte, i.n)
	if _, err := io.ReadFull(i.source, b); err != nil {
		return "", fmt.Errorf("read token entropy: %w", err)
	}
	return hex.EncodeToString(b), nil
}

