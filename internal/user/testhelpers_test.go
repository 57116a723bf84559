package user

import (
	"fmt"
	"testing"

	"torslanda_locals_backend/internal/platform/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// sequenceIssuer hands out the given tokens in order.
type sequenceIssuer struct {
	tokens []string
	next   int
}

func (s *sequenceIssuer) Issue() (string, error) {
	if s.next >= len(s.tokens) {
		return "", fmt.Errorf("sequence exhausted")
	}
	tok := s.tokens[s.next]
	s.next++
	return tok, nil
}
