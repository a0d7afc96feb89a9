// internal/storage/database.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Driver registration

	"github.com/Annany2002/docvault-backend/config" // Import config package
	"github.com/Annany2002/docvault-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// sqliteParams enables foreign keys, WAL and a 5s busy timeout. _txlock=immediate makes
// every BEGIN take the write lock up front, which serializes read-then-write transactions.
const sqliteParams = "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

// ConnectDB opens the SQLite database described by cfg, verifies the connection
// and applies pending schema migrations ('users', 'documents').
func ConnectDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	dbPath := filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)
	customLog.Printf("Storage: Initializing database: %s", dbPath)

	// Ensure the data directory exists
	if err := os.MkdirAll(cfg.DatabaseDir, 0o750); err != nil {
		customLog.Warnf("Storage: Error creating data directory '%s': %v", cfg.DatabaseDir, err)
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", dbPath+sqliteParams)
	if err != nil {
		customLog.Warnf("Storage: Failed to open db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// Verify connection is working
	if err = db.PingContext(ctx); err != nil {
		db.Close() // Close the connection if ping fails
		customLog.Warnf("Storage: Failed to ping db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	customLog.Println("Storage: Database connection successful.")

	if err = RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
