// Package storage persists the application state in a local SQLite file.
// The state is stored as a single document, read wholesale on startup and
// written wholesale after every mutation.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Registers the sqlite driver

	"github.com/Marcel-2025/Lingu-V.2/internal/backup"
	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Load reads the persisted application state. The second return value is
// false when nothing has been saved yet (fresh install).
func (db *DB) Load() (domain.AppData, bool, error) {
	var document string
	err := db.conn.QueryRow(`SELECT document FROM app_state WHERE id = 1`).Scan(&document)
	if err == sql.ErrNoRows {
		return domain.AppData{}, false, nil
	}
	if err != nil {
		return domain.AppData{}, false, fmt.Errorf("failed to load app state: %w", err)
	}

	app, err := backup.Unmarshal([]byte(document))
	if err != nil {
		return domain.AppData{}, false, fmt.Errorf("failed to decode app state: %w", err)
	}
	return app, true, nil
}

// Save writes the whole application state, replacing whatever was there.
func (db *DB) Save(app domain.AppData, now time.Time) error {
	document, err := backup.Marshal(app, now)
	if err != nil {
		return fmt.Errorf("failed to encode app state: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO app_state (id, document, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at
	`, string(document), now)
	if err != nil {
		return fmt.Errorf("failed to save app state: %w", err)
	}
	return nil
}
