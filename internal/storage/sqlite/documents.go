package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/storage"
)

// ListAll returns every document of a collection in insertion order.
// Documents whose stored fields cannot be parsed have nil Fields.
func (s *SQLiteStore) ListAll(ctx context.Context, collection string) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, fields, created_at, updated_at FROM documents WHERE collection = ? ORDER BY seq",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		doc := models.Document{Collection: collection}
		var raw string
		if err := rows.Scan(&doc.ID, &raw, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		// An unreadable row is returned with nil Fields so one bad record
		// does not hide the rest of the collection.
		if doc.Fields, err = decodeFields(raw); err != nil {
			slog.Warn("Unreadable document fields", "collection", collection, "id", doc.ID, "error", err)
			doc.Fields = nil
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}

	return docs, nil
}

// Get retrieves a single document.
func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (*models.Document, error) {
	doc := &models.Document{Collection: collection}
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, fields, created_at, updated_at FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	).Scan(&doc.ID, &raw, &doc.CreatedAt, &doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s/%s", storage.ErrNotFound, collection, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if doc.Fields, err = decodeFields(raw); err != nil {
		return nil, err
	}
	return doc, nil
}

// Create persists a new document, assigning its ID and timestamps.
func (s *SQLiteStore) Create(ctx context.Context, doc *models.Document) error {
	if doc.Collection == "" {
		return fmt.Errorf("collection is required")
	}
	raw, err := encodeFields(doc.Fields)
	if err != nil {
		return err
	}

	// IDs are always assigned here; callers cannot choose them.
	doc.ID = uuid.New().String()
	now := time.Now().Unix()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, fields, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		doc.Collection, doc.ID, raw, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	s.watches.notify(doc.Collection)
	return nil
}

// Update replaces the fields of an existing document.
func (s *SQLiteStore) Update(ctx context.Context, doc *models.Document) error {
	raw, err := encodeFields(doc.Fields)
	if err != nil {
		return err
	}
	doc.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET fields = ?, updated_at = ? WHERE collection = ? AND id = ?",
		raw, doc.UpdatedAt, doc.Collection, doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if err := requireOneRow(res, doc.Collection, doc.ID); err != nil {
		return err
	}

	s.watches.notify(doc.Collection)
	return nil
}

// Delete removes a document.
func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if err := requireOneRow(res, collection, id); err != nil {
		return err
	}

	s.watches.notify(collection)
	return nil
}

func requireOneRow(res sql.Result, collection, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", storage.ErrNotFound, collection, id)
	}
	return nil
}
