package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Annany2002/docvault-backend/api/middleware"
	"github.com/Annany2002/docvault-backend/internal/core"
)

// bindingError passes validator errors through and tags everything else as invalid input.
func bindingError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
}

// ownerID returns the account resolved by middleware.AccountMiddleware.
func ownerID(c *gin.Context) int64 {
	return c.MustGet(middleware.AccountIDKey).(int64)
}

// documentID parses the :id path parameter.
func documentID(c *gin.Context) (int64, error) {
	return core.ParseDocumentID(c.Param("id"))
}

// readFormFile reads an uploaded file fully, refusing anything above maxBytes.
func readFormFile(fileHeader *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fileHeader.Size > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", core.ErrUploadTooLarge, maxBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(content)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", core.ErrUploadTooLarge, maxBytes)
	}
	return content, nil
}
