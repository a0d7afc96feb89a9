// internal/core/validation.go
package core

import (
	"strings"
	"unicode/utf8"

	"github.com/Annany2002/docvault-backend/internal/domain"
)

// MaxFilenameLength bounds stored filenames (in characters).
const MaxFilenameLength = 255

// AllowedContentTypes maps accepted file_type spellings to the stored value.
var AllowedContentTypes = map[string]string{
	"csv":  domain.ContentTypeCSV,
	"json": domain.ContentTypeJSON,
	"xlsx": domain.ContentTypeXLSX,
}

// NormalizeContentType lower-cases a file_type, strips a leading dot and checks it is supported.
func NormalizeContentType(contentType string) (string, bool) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(contentType)), ".")
	normalized, ok := AllowedContentTypes[key]
	return normalized, ok
}

// IsValidFilename checks that a filename is present and not absurdly long.
// Anything else, including path-like names, is stored verbatim.
func IsValidFilename(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return utf8.ValidString(name) && utf8.RuneCountInString(name) <= MaxFilenameLength
}
