// internal/auth/auth.go
package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/Annany2002/docvault-backend/internal/logger"
)

var (
	ErrHashFailed = errors.New("failed to hash password")
	customLog     = logger.NewLogger()

	dummyHashOnce sync.Once
	dummyHash     []byte
)

// --- Password Utilities ---

// HashPassword generates a bcrypt hash for the given password at the default cost.
func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, bcrypt.DefaultCost)
}

// HashPasswordWithCost generates a bcrypt hash using the given work factor.
// bcrypt draws a fresh salt per call, so equal passwords never share a hash.
func HashPasswordWithCost(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		customLog.Warnf("Error generating bcrypt hash: %v", err)
		// Don't return raw bcrypt error to caller usually
		return "", fmt.Errorf("%w", ErrHashFailed)
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a plaintext password with a stored bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// Log unexpected errors, but return false for mismatch or other errors
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		customLog.Warnf("Unexpected error comparing password hash: %v", err)
	}
	return err == nil
}

// EqualizeTiming burns one bcrypt comparison against a fixed hash. Login calls it when
// the email is unknown so that path costs the same as a wrong password.
func EqualizeTiming(password string) {
	dummyHashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
		if err != nil {
			customLog.Warnf("Failed to prepare timing hash: %v", err)
			return
		}
		dummyHash = h
	})
	if dummyHash != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	}
}
