package storage

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Annany2002/docvault-backend/config"
)

// testDB creates a migrated SQLite database under t.TempDir and closes it on cleanup.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseDir:  t.TempDir(),
		DatabaseFile: "test_vault.db",
	}

	db, err := ConnectDB(context.Background(), cfg)
	require.NoError(t, err, "Failed to connect to test database")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})
	return db
}

// mustCreateAccount inserts an account with a placeholder hash.
func mustCreateAccount(t *testing.T, db *sqlx.DB, name, email string) int64 {
	t.Helper()
	id, err := CreateAccount(context.Background(), db, name, email, "$2a$04$placeholder", fixedTime(0))
	require.NoError(t, err)
	return id
}
