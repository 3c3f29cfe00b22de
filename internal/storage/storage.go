// Package storage persists catalog records in SQLite. Records are append
// only: ids are assigned by the database in strictly increasing order and a
// stored record is never updated or deleted.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/snapcatalog/snapcatalog/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS catalog_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    image_ref TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    specifications TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

// Store manages catalog record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create persists a new record and returns it with its assigned id. The
// insert is a single statement, so a record is either fully stored or not
// stored at all.
func (s *Store) Create(ctx context.Context, imageRef, name, description string, specs models.Specifications) (*models.CatalogRecord, error) {
	encoded, err := specs.Encode()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO catalog_records (image_ref, name, description, specifications, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		imageRef,
		name,
		description,
		encoded,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &models.CatalogRecord{
		ID:             id,
		ImageRef:       imageRef,
		Name:           name,
		Description:    description,
		Specifications: specs,
		CreatedAt:      now,
	}, nil
}

// List returns every stored record in ascending id (insertion) order. A row
// whose specifications payload does not decode is returned with the empty
// key set rather than failing the whole listing.
func (s *Store) List(ctx context.Context) ([]models.CatalogRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, image_ref, name, description, specifications, created_at
         FROM catalog_records ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := make([]models.CatalogRecord, 0)
	for rows.Next() {
		var (
			record    models.CatalogRecord
			rawSpecs  string
			createdAt string
		)
		if err := rows.Scan(&record.ID, &record.ImageRef, &record.Name, &record.Description, &rawSpecs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		specs, err := models.DecodeSpecifications(rawSpecs)
		if err != nil {
			slog.Warn("Skipping undecodable specifications payload", "id", record.ID, "err", err)
		}
		record.Specifications = specs

		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			record.CreatedAt = ts
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}
