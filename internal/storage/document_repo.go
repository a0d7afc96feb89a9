// internal/storage/document_repo.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/Annany2002/docvault-backend/internal/domain"
)

// Specific errors for document operations
var (
	ErrDocumentNotFound = errors.New("document not found")
)

const documentMetadataColumns = `id, owner_id, filename, content_type, row_count, col_count, created_at, updated_at`

// --- Document Operations ---

// SaveOrUpdateDocument stores upload under (ownerID, upload.Filename). An existing document
// with that key gets its content, type and counts overwritten and updated_at set to now;
// id and created_at are kept. Otherwise a new document is created with both timestamps = now.
// Lookup and write share one immediate transaction.
func SaveOrUpdateDocument(ctx context.Context, db *sqlx.DB, ownerID int64, upload domain.DocumentUpload, now time.Time) (*domain.DocumentMetadata, error) {
	now = now.UTC()
	content := upload.Content
	if content == nil {
		content = []byte{}
	}

	var meta domain.DocumentMetadata
	err := withTx(ctx, db, func(tx *sqlx.Tx) error {
		var documentID int64
		lookupSQL := `SELECT id FROM documents WHERE owner_id = ? AND filename = ? ORDER BY id LIMIT 1`
		err := tx.GetContext(ctx, &documentID, lookupSQL, ownerID, upload.Filename)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			insertSQL := `INSERT INTO documents (owner_id, filename, content, content_type, row_count, col_count, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
			result, err := tx.ExecContext(ctx, insertSQL, ownerID, upload.Filename, content, upload.ContentType, upload.RowCount, upload.ColCount, now, now)
			if err != nil {
				return err
			}
			if documentID, err = result.LastInsertId(); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			updateSQL := `UPDATE documents SET content = ?, content_type = ?, row_count = ?, col_count = ?, updated_at = ? WHERE id = ?`
			if _, err := tx.ExecContext(ctx, updateSQL, content, upload.ContentType, upload.RowCount, upload.ColCount, now, documentID); err != nil {
				return err
			}
		}

		return tx.GetContext(ctx, &meta, `SELECT `+documentMetadataColumns+` FROM documents WHERE id = ?`, documentID)
	})
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return nil, ErrUserNotFound
		}
		customLog.Warnf("Storage: Failed to save document '%s' for OwnerID %d: %v", upload.Filename, ownerID, err)
		return nil, fmt.Errorf("database error saving document: %w", err)
	}

	return &meta, nil
}

// ListDocuments returns metadata for every document owned by ownerID, newest created_at first.
// Documents created at the same instant keep insertion order.
func ListDocuments(ctx context.Context, db *sqlx.DB, ownerID int64) ([]domain.DocumentMetadata, error) {
	query := `SELECT ` + documentMetadataColumns + ` FROM documents WHERE owner_id = ? ORDER BY created_at DESC, id ASC`

	documents := make([]domain.DocumentMetadata, 0)
	if err := db.SelectContext(ctx, &documents, query, ownerID); err != nil {
		customLog.Warnf("Storage: Error listing documents for OwnerID %d: %v", ownerID, err)
		return nil, fmt.Errorf("database error listing documents: %w", err)
	}
	return documents, nil
}

// GetDocument fetches a document with its content. Ownership is part of the lookup, so a
// document owned by someone else is reported exactly like a missing one.
func GetDocument(ctx context.Context, db *sqlx.DB, documentID, ownerID int64) (*domain.Document, error) {
	query := `SELECT ` + documentMetadataColumns + `, content FROM documents WHERE id = ? AND owner_id = ? LIMIT 1`

	var document domain.Document
	err := db.GetContext(ctx, &document, query, documentID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		customLog.Warnf("Storage: Error fetching document %d for OwnerID %d: %v", documentID, ownerID, err)
		return nil, fmt.Errorf("database error fetching document: %w", err)
	}
	if document.Content == nil {
		document.Content = []byte{}
	}
	return &document, nil
}

// DeleteDocument permanently removes a document owned by ownerID.
// It returns ErrDocumentNotFound if no matching row was found.
func DeleteDocument(ctx context.Context, db *sqlx.DB, documentID, ownerID int64) error {
	deleteSQL := `DELETE FROM documents WHERE id = ? AND owner_id = ?`
	result, err := db.ExecContext(ctx, deleteSQL, documentID, ownerID)
	if err != nil {
		customLog.Warnf("Storage: Error deleting document %d for OwnerID %d: %v", documentID, ownerID, err)
		return fmt.Errorf("database error deleting document: %w", err)
	}
	return requireAffected(result, documentID, ownerID)
}

// RenameDocument sets a new filename. updated_at is left alone and no check is made
// against the owner's other filenames.
func RenameDocument(ctx context.Context, db *sqlx.DB, documentID, ownerID int64, newFilename string) error {
	updateSQL := `UPDATE documents SET filename = ? WHERE id = ? AND owner_id = ?`
	result, err := db.ExecContext(ctx, updateSQL, newFilename, documentID, ownerID)
	if err != nil {
		customLog.Warnf("Storage: Error renaming document %d for OwnerID %d: %v", documentID, ownerID, err)
		return fmt.Errorf("database error renaming document: %w", err)
	}
	return requireAffected(result, documentID, ownerID)
}

func requireAffected(result sql.Result, documentID, ownerID int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		customLog.Warnf("Storage: Error getting RowsAffected for document %d, OwnerID %d: %v", documentID, ownerID, err)
		return fmt.Errorf("failed confirming document change: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
