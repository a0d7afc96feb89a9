package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Annany2002/docvault-backend/internal/domain"
	"github.com/Annany2002/docvault-backend/internal/storage"
)

// DocumentService performs document operations scoped to an owning account.
type DocumentService struct {
	DB  *sqlx.DB
	Now func() time.Time
}

// NewDocumentService creates a DocumentService using the wall clock.
func NewDocumentService(db *sqlx.DB) *DocumentService {
	return &DocumentService{DB: db, Now: time.Now}
}

// Save creates the document or overwrites the owner's document with the same filename.
func (s *DocumentService) Save(ctx context.Context, ownerID int64, upload domain.DocumentUpload) (*domain.DocumentMetadata, error) {
	meta, err := storage.SaveOrUpdateDocument(ctx, s.DB, ownerID, upload, s.Now())
	if err != nil {
		return nil, err
	}
	customLog.Printf("Service: Saved document %d ('%s') for OwnerID %d", meta.ID, meta.Filename, ownerID)
	return meta, nil
}

// List returns the owner's documents, newest first, without content.
func (s *DocumentService) List(ctx context.Context, ownerID int64) ([]domain.DocumentMetadata, error) {
	return storage.ListDocuments(ctx, s.DB, ownerID)
}

// Get returns a document with content if ownerID owns it.
func (s *DocumentService) Get(ctx context.Context, documentID, ownerID int64) (*domain.Document, error) {
	return storage.GetDocument(ctx, s.DB, documentID, ownerID)
}

// Delete removes a document owned by ownerID.
func (s *DocumentService) Delete(ctx context.Context, documentID, ownerID int64) error {
	if err := storage.DeleteDocument(ctx, s.DB, documentID, ownerID); err != nil {
		return err
	}
	customLog.Printf("Service: Deleted document %d for OwnerID %d", documentID, ownerID)
	return nil
}

// Rename changes a document's filename without touching updated_at.
func (s *DocumentService) Rename(ctx context.Context, documentID, ownerID int64, newFilename string) error {
	if err := storage.RenameDocument(ctx, s.DB, documentID, ownerID, newFilename); err != nil {
		return err
	}
	customLog.Printf("Service: Renamed document %d for OwnerID %d", documentID, ownerID)
	return nil
}
