package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}

	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgDup), "idx_users_email", "users.email"))
	assert.False(t, IsUniqueViolation(pgDup, "idx_users_access_token", "users.access_token"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23502", ConstraintName: "idx_users_email"}, "idx_users_email", "users.email"))

	sqliteDup := errors.New("UNIQUE constraint failed: locals.name")
	assert.True(t, IsUniqueViolation(sqliteDup, "idx_locals_name", "locals.name"))
	assert.False(t, IsUniqueViolation(sqliteDup, "idx_users_email", "users.email"))

	assert.False(t, IsUniqueViolation(nil, "idx_users_email", "users.email"))
}
