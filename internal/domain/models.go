// internal/domain/models.go
package domain

import "time"

// Supported document content types. The value is caller supplied and never checked against the bytes.
const (
	ContentTypeCSV  = "csv"
	ContentTypeJSON = "json"
	ContentTypeXLSX = "xlsx"
)

// Account defines the structure for user data in the DB
type Account struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // Never leaves the storage/service layers
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// DocumentMetadata is everything about a stored document except its bytes.
type DocumentMetadata struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     int64     `db:"owner_id" json:"-"`
	Filename    string    `db:"filename" json:"filename"`
	ContentType string    `db:"content_type" json:"file_type"`
	RowCount    int       `db:"row_count" json:"row_count"`
	ColCount    int       `db:"col_count" json:"col_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Document is a stored file together with its content.
type Document struct {
	DocumentMetadata
	Content []byte `db:"content" json:"-"`
}

// DocumentUpload carries the caller-supplied fields of a save.
type DocumentUpload struct {
	Filename    string
	ContentType string
	RowCount    int
	ColCount    int
	Content     []byte
}
