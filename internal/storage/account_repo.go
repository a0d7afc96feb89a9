// internal/storage/account_repo.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/Annany2002/docvault-backend/internal/domain"
)

// Specific errors for account operations
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// --- Account Operations ---

// CreateAccount inserts a new account and returns its ID.
// A duplicate email is reported as ErrEmailExists and leaves the existing row untouched.
func CreateAccount(ctx context.Context, db *sqlx.DB, name, email, passwordHash string, now time.Time) (int64, error) {
	sqlStatement := `INSERT INTO users (name, email, password_hash, created_at) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, sqlStatement, name, email, passwordHash, now.UTC())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			if strings.Contains(sqliteErr.Error(), "users.email") {
				return 0, ErrEmailExists
			}
		}
		customLog.Warnf("Storage: Failed to insert user %s: %v", email, err)
		return 0, fmt.Errorf("database error during user creation: %w", err)
	}

	accountID, err := result.LastInsertId()
	if err != nil {
		customLog.Warnf("Storage: Failed to get last insert ID for user %s: %v", email, err)
		return 0, fmt.Errorf("failed to retrieve user ID after creation: %w", err)
	}
	return accountID, nil
}

// FindAccountByEmail retrieves an account by exact email match. No case folding or trimming.
func FindAccountByEmail(ctx context.Context, db *sqlx.DB, email string) (*domain.Account, error) {
	sqlStatement := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = ? LIMIT 1`

	var account domain.Account
	err := db.GetContext(ctx, &account, sqlStatement, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		customLog.Warnf("Storage: Failed to find user by email %s: %v", email, err)
		return nil, fmt.Errorf("database error finding user: %w", err)
	}
	return &account, nil
}
