package repository

import (
	"testing"

	"github.com/scholarvault/scholarvault/internal/testutil"
)

func TestMySQLUserRepository(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewMySQLUserRepository(db)

	t.Run("create and get", func(t *testing.T) {
		testutil.CleanupMySQLDB(t, db)
		testUserCreateAndGet(t, repo)
	})

	t.Run("not found", func(t *testing.T) {
		testutil.CleanupMySQLDB(t, db)
		testUserNotFound(t, repo)
	})

	t.Run("duplicate email", func(t *testing.T) {
		testutil.CleanupMySQLDB(t, db)
		testUserDuplicateEmail(t, repo)
	})
}
