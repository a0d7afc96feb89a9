// internal/core/query_params.go
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidInput marks request input that could not be parsed or validated.
var ErrInvalidInput = errors.New("invalid input")

// ParseDocumentID parses the :id path segment of document routes.
func ParseDocumentID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: document id must be a positive integer", ErrInvalidInput)
	}
	return id, nil
}

// ParseContentType validates a file_type and returns its stored form.
func ParseContentType(raw string) (string, error) {
	contentType, ok := NormalizeContentType(raw)
	if !ok {
		return "", fmt.Errorf("%w: file_type must be one of csv, json, xlsx", ErrInvalidInput)
	}
	return contentType, nil
}

// ErrUploadTooLarge is returned when an uploaded file exceeds the configured limit.
var ErrUploadTooLarge = errors.New("uploaded file exceeds the size limit")
