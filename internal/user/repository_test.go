package user

import (
	"context"
	"testing"

	"torslanda_locals_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo Repository, email, token string) *User {
	t.Helper()
	u := &User{FirstName: "Anna", LastName: "Berg", Email: email, PasswordHash: "digest", AccessToken: token}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestGormRepository_CreateAndFind(t *testing.T) {
	repo := NewGORMRepository(newTestDB(t))
	ctx := context.Background()
	created := seedUser(t, repo, "  Anna@Example.COM ", "tok-1")

	byEmail, err := repo.FindByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "anna@example.com", byEmail.Email)

	byToken, err := repo.FindByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byToken.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Berg", byID.LastName)
}

func TestGormRepository_Misses(t *testing.T) {
	repo := NewGORMRepository(newTestDB(t))
	ctx := context.Background()
	seedUser(t, repo, "anna@example.com", "tok-1")

	_, err := repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.FindByToken(ctx, "")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = repo.FindByToken(ctx, "tok-2")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGormRepository_UniqueConstraints(t *testing.T) {
	repo := NewGORMRepository(newTestDB(t))
	ctx := context.Background()
	seedUser(t, repo, "anna@example.com", "tok-1")

	err := repo.Create(ctx, &User{FirstName: "Anna", LastName: "Two", Email: "ANNA@example.com", PasswordHash: "d", AccessToken: "tok-2"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	err = repo.Create(ctx, &User{FirstName: "Bo", LastName: "Ek", Email: "bo@example.com", PasswordHash: "d", AccessToken: "tok-1"})
	assert.ErrorIs(t, err, ErrAccessTokenTaken)
}

func TestGormRepository_UpdateProfile(t *testing.T) {
	repo := NewGORMRepository(newTestDB(t))
	ctx := context.Background()
	seedUser(t, repo, "anna@example.com", "tok-1")
	seedUser(t, repo, "bo@example.com", "tok-2")

	t.Run("updates allowed columns only", func(t *testing.T) {
		updated, err := repo.UpdateProfile(ctx, "tok-1", map[string]interface{}{"first_name": "Annika"})
		require.NoError(t, err)
		assert.Equal(t, "Annika", updated.FirstName)
		assert.Equal(t, "digest", updated.PasswordHash)
	})

	t.Run("rejects credential columns", func(t *testing.T) {
		_, err := repo.UpdateProfile(ctx, "tok-1", map[string]interface{}{"password_hash": "x"})
		require.Error(t, err)

		u, err := repo.FindByToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "digest", u.PasswordHash)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := repo.UpdateProfile(ctx, "nope", map[string]interface{}{"first_name": "Eve"})
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("email taken by someone else", func(t *testing.T) {
		_, err := repo.UpdateProfile(ctx, "tok-1", map[string]interface{}{"email": "bo@example.com"})
		assert.ErrorIs(t, err, common.ErrDuplicateEmail)
	})
}

func TestGormRepository_List(t *testing.T) {
	repo := NewGORMRepository(newTestDB(t))
	seedUser(t, repo, "anna@example.com", "tok-1")
	seedUser(t, repo, "bo@example.com", "tok-2")

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
