// api/models/document_models.go
package models

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Annany2002/docvault-backend/internal/core"
	"github.com/Annany2002/docvault-backend/internal/domain"
)

// --- Document Request/Response Structs ---

// SaveDocumentRequest holds the multipart fields of an upload. The file part itself
// is read separately with c.FormFile("file").
type SaveDocumentRequest struct {
	Email    string `form:"email"` // consumed by AccountMiddleware
	Filename string `form:"filename" binding:"required,filename"`
	FileType string `form:"file_type" binding:"required,doctype"`
	RowCount int    `form:"row_count" binding:"min=0"`
	ColCount int    `form:"col_count" binding:"min=0"`
}

// SaveDocumentResponse is returned after a save.
type SaveDocumentResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DocumentID int64  `json:"document_id"`
}

// RenameDocumentRequest binds the rename query string.
type RenameDocumentRequest struct {
	NewName string `form:"new_name" binding:"required,filename"`
}

// ListDocumentsResponse wraps the owner's documents.
type ListDocumentsResponse struct {
	Documents []domain.DocumentMetadata `json:"documents"`
}

// DownloadDocumentResponse carries the file bytes hex encoded.
type DownloadDocumentResponse struct {
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
	FileData string `json:"file_data"`
}

// MessageResponse is the generic success body.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RegisterValidators adds the custom binding tags used by the request structs
// ("doctype", "filename") to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("doctype", func(fl validator.FieldLevel) bool {
		_, ok := core.NormalizeContentType(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}
	return v.RegisterValidation("filename", func(fl validator.FieldLevel) bool {
		return core.IsValidFilename(fl.Field().String())
	})
}
