// api/handlers/document_handler.go
package handlers

import (
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/docvault-backend/api/models"
	"github.com/Annany2002/docvault-backend/config"
	"github.com/Annany2002/docvault-backend/internal/core"
	"github.com/Annany2002/docvault-backend/internal/domain"
	"github.com/Annany2002/docvault-backend/internal/service"
)

// DocumentHandler holds dependencies for document CRUD handlers.
type DocumentHandler struct {
	Documents *service.DocumentService
	Cfg       *config.Config // App configuration
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documents *service.DocumentService, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{
		Documents: documents,
		Cfg:       cfg,
	}
}

// SaveDocument handles multipart uploads. Saving a filename the owner already has
// overwrites that document.
func (h *DocumentHandler) SaveDocument(c *gin.Context) {
	owner := ownerID(c)

	var req models.SaveDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		customLog.Warnf("SaveDocument binding error: %v", err)
		_ = c.Error(bindingError(err))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(err) // http.ErrMissingFile when the part is absent
		return
	}

	content, err := readFormFile(fileHeader, h.Cfg.MaxUploadBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	contentType, err := core.ParseContentType(req.FileType)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// row_count/col_count are trusted as sent; the content is never parsed.
	meta, err := h.Documents.Save(c.Request.Context(), owner, domain.DocumentUpload{
		Filename:    req.Filename,
		ContentType: contentType,
		RowCount:    req.RowCount,
		ColCount:    req.ColCount,
		Content:     content,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.SaveDocumentResponse{
		Success:    true,
		Message:    "Document saved",
		DocumentID: meta.ID,
	})
}

// ListDocuments returns the caller's documents, newest first.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	documents, err := h.Documents.List(c.Request.Context(), ownerID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.ListDocumentsResponse{Documents: documents})
}

// DownloadDocument returns a document's bytes as a hex string.
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	id, err := documentID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	document, err := h.Documents.Get(c.Request.Context(), id, ownerID(c))
	if err != nil {
		_ = c.Error(err) // ErrDocumentNotFound for missing and foreign documents alike
		return
	}

	c.JSON(http.StatusOK, models.DownloadDocumentResponse{
		Filename: document.Filename,
		FileType: document.ContentType,
		FileData: hex.EncodeToString(document.Content),
	})
}

// DeleteDocument permanently removes one of the caller's documents.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, err := documentID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.Documents.Delete(c.Request.Context(), id, ownerID(c)); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Document deleted"})
}

// RenameDocument changes the filename of one of the caller's documents.
func (h *DocumentHandler) RenameDocument(c *gin.Context) {
	id, err := documentID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req models.RenameDocumentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(bindingError(err))
		return
	}

	if err := h.Documents.Rename(c.Request.Context(), id, ownerID(c), req.NewName); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Document renamed"})
}
