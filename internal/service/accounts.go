// Package service implements the account and document operations exposed to the HTTP layer.
// Callers identify themselves by email only; there is no session or credential recheck
// after login.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/Annany2002/docvault-backend/internal/auth"
	"github.com/Annany2002/docvault-backend/internal/domain"
	"github.com/Annany2002/docvault-backend/internal/logger"
	"github.com/Annany2002/docvault-backend/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

// AccountService creates, finds and authenticates accounts.
type AccountService struct {
	DB         *sqlx.DB
	BcryptCost int
	Now        func() time.Time
}

// NewAccountService creates an AccountService hashing at the given bcrypt cost.
func NewAccountService(db *sqlx.DB, bcryptCost int) *AccountService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{DB: db, BcryptCost: bcryptCost, Now: time.Now}
}

// Signup registers a new account. It fails with storage.ErrEmailExists when the email is taken.
func (s *AccountService) Signup(ctx context.Context, name, email, password string) (*domain.Account, error) {
	hashedPassword, err := auth.HashPasswordWithCost(password, s.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	accountID, err := storage.CreateAccount(ctx, s.DB, name, email, hashedPassword, now)
	if err != nil {
		return nil, err
	}

	customLog.Printf("Service: Registered account %d", accountID)
	return &domain.Account{ID: accountID, Name: name, Email: email, CreatedAt: now}, nil
}

// FindByEmail resolves an account by exact email. The password hash is stripped.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := storage.FindAccountByEmail(ctx, s.DB, email)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}

// Authenticate checks an email/password pair. Unknown email and wrong password both
// yield storage.ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := storage.FindAccountByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			auth.EqualizeTiming(password)
			customLog.Warnf("Service: Login failed for email %s: unknown account", email)
			return nil, storage.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(password, account.PasswordHash) {
		customLog.Warnf("Service: Login failed for email %s: invalid password", email)
		return nil, storage.ErrInvalidCredentials
	}

	account.PasswordHash = ""
	return account, nil
}
