// api/middleware/account_middleware.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/docvault-backend/internal/core"
	"github.com/Annany2002/docvault-backend/internal/domain"
)

// AccountIDKey is the gin context key holding the resolved account ID.
const AccountIDKey = "accountId"

// AccountFinder resolves an account by email.
type AccountFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// AccountMiddleware resolves the caller's account from the "email" query parameter or
// form field and stores its ID under AccountIDKey. Knowing the email is all it takes:
// there is no token and no password recheck.
func AccountMiddleware(accounts AccountFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			if err := parseBodyForm(c); err != nil {
				_ = c.Error(err)
				c.Abort()
				return
			}
			email = c.Request.PostFormValue("email")
		}
		if email == "" {
			_ = c.Error(fmt.Errorf("%w: email is required", core.ErrInvalidInput))
			c.Abort()
			return
		}

		account, err := accounts.FindByEmail(c.Request.Context(), email)
		if err != nil {
			requestLog(c).Warnf("AccountMiddleware: Could not resolve account for email %s: %v", email, err)
			_ = c.Error(err) // ErrUserNotFound or DB error, mapped by ErrorHandler
			c.Abort()
			return
		}

		c.Set(AccountIDKey, account.ID)
		c.Next()
	}
}

// multipartMemory is how much of a multipart body is buffered in memory before spilling to disk.
const multipartMemory = 8 << 20

// parseBodyForm parses a urlencoded or multipart body so form fields can be read.
// An oversized body surfaces as core.ErrUploadTooLarge.
func parseBodyForm(c *gin.Context) error {
	var err error
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		err = c.Request.ParseMultipartForm(multipartMemory)
	} else {
		err = c.Request.ParseForm()
	}
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit is %d bytes", core.ErrUploadTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: malformed form body: %v", core.ErrInvalidInput, err)
}
