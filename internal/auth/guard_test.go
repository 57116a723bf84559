package auth

import (
	"context"
	"errors"
	"testing"

	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) ResolveToken(ctx context.Context, token string) (*shared.Identity, error) {
	args := m.Called(ctx, token)
	if id, ok := args.Get(0).(*shared.Identity); ok {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestGuard_Authenticate(t *testing.T) {
	ctx := context.Background()
	anna := &shared.Identity{ID: uuid.New(), FirstName: "Anna", LastName: "Berg"}

	tests := []struct {
		name    string
		header  string
		setup   func(m *mockResolver)
		wantID  *shared.Identity
		wantErr *common.APIError
	}{
		{
			name:    "missing header",
			header:  "",
			setup:   func(m *mockResolver) {},
			wantErr: common.ErrUnauthorized,
		},
		{
			name:   "raw token",
			header: "tok-anna",
			setup: func(m *mockResolver) {
				m.On("ResolveToken", ctx, "tok-anna").Return(anna, nil).Once()
			},
			wantID: anna,
		},
		{
			name:   "bearer token",
			header: "Bearer tok-anna",
			setup: func(m *mockResolver) {
				m.On("ResolveToken", ctx, "tok-anna").Return(anna, nil).Once()
			},
			wantID: anna,
		},
		{
			name:   "unknown token",
			header: "garbage",
			setup: func(m *mockResolver) {
				m.On("ResolveToken", ctx, "garbage").Return(nil, common.ErrNotFound).Once()
			},
			wantErr: common.ErrUnauthorized,
		},
		{
			name:   "store failure",
			header: "tok-anna",
			setup: func(m *mockResolver) {
				m.On("ResolveToken", ctx, "tok-anna").Return(nil, errors.New("db down")).Once()
			},
			wantErr: common.ErrStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(mockResolver)
			tt.setup(resolver)
			guard := NewGuard(resolver, zap.NewNop())

			id, err := guard.Authenticate(ctx, tt.header)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, id)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			resolver.AssertExpectations(t)
		})
	}
}

func TestGuard_IsStateless(t *testing.T) {
	ctx := context.Background()
	resolver := new(mockResolver)
	anna := &shared.Identity{ID: uuid.New()}
	resolver.On("ResolveToken", ctx, "tok").Return(anna, nil).Twice()
	guard := NewGuard(resolver, zap.NewNop())

	_, err := guard.Authenticate(ctx, "tok")
	require.NoError(t, err)
	_, err = guard.Authenticate(ctx, "tok")
	require.NoError(t, err)

	resolver.AssertNumberOfCalls(t, "ResolveToken", 2)
}
