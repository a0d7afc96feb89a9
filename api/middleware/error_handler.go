// api/middleware/error_handler.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10" // Import validator for binding errors

	"github.com/Annany2002/docvault-backend/internal/core"
	"github.com/Annany2002/docvault-backend/internal/storage" // Import internal storage errors
)

// ErrorHandler creates a Gin middleware for centralized error handling.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Process request using subsequent handlers
		c.Next()

		// Check if any errors were attached during handler execution
		if len(c.Errors) == 0 {
			return // No errors, nothing to do
		}

		// We only handle the last error for the response.
		err := c.Errors.Last().Err
		statusCode, userMessage := mapError(err)

		entry := requestLog(c).WithError(err).WithField("status", statusCode)
		if statusCode >= http.StatusInternalServerError {
			entry.Errorf("[ErrorHandler] Unhandled error type: %T", err)
		} else {
			entry.Warn("[ErrorHandler] Request failed")
		}

		// Abort execution and send JSON response
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, gin.H{"error": userMessage})
		} else {
			entry.Warn("[ErrorHandler] Response already written before handling error.")
		}
	}
}

// mapError maps an error to an HTTP status code and a fixed, non-leaking message.
func mapError(err error) (int, string) {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, storage.ErrEmailExists):
		return http.StatusBadRequest, "Email already exists"
	case errors.Is(err, storage.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, storage.ErrUserNotFound):
		return http.StatusNotFound, storage.ErrUserNotFound.Error()
	case errors.Is(err, storage.ErrDocumentNotFound):
		return http.StatusNotFound, storage.ErrDocumentNotFound.Error()
	case errors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			customLog.Printf("Validation Error: Field %s failed on %s", fe.Field(), fe.Tag())
		}
		return http.StatusBadRequest, "Validation failed. Please check your input."
	case errors.Is(err, core.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge, core.ErrUploadTooLarge.Error()
	case errors.Is(err, http.ErrMissingFile):
		return http.StatusBadRequest, "file is required"
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "An unexpected internal server error occurred."
	}
}
