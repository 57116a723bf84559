package crypto

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomTokenIssuer_LengthAndAlphabet(t *testing.T) {
	issuer := NewRandomTokenIssuer(128)

	token, err := issuer.Issue()
	require.NoError(t, err)
	assert.Len(t, token, 256)
	assert.Empty(t, strings.Trim(token, "0123456789abcdef"))
}

func TestRandomTokenIssuer_Unique(t *testing.T) {
	issuer := NewRandomTokenIssuer(32)
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		token, err := issuer.Issue()
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "duplicate token after %d issues", i)
		seen[token] = struct{}{}
	}
}

func TestRandomTokenIssuer_ShortReadFails(t *testing.T) {
	issuer := NewRandomTokenIssuerWithSource(bytes.NewReader(make([]byte, 4)), 16)

	_, err := issuer.Issue()
	assert.Error(t, err)
}

func TestRandomTokenIssuer_EnforcesMinimumSize(t *testing.T) {
	issuer := NewRandomTokenIssuer(1)

	token, err := issuer.Issue()
	require.NoError(t, err)
	assert.Len(t, token, 32)
}
