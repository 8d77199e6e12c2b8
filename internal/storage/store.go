// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tipsplit/internal/models"
)

// ErrNotFound is returned when a document does not exist in its collection.
var ErrNotFound = errors.New("document not found")

// ErrAlreadyExists is returned when a write collides with a unique key.
var ErrAlreadyExists = errors.New("already exists")

// DocumentReader lists the documents of a collection.
type DocumentReader interface {
	// ListAll returns every document of the collection in insertion order.
	// An unknown collection is simply empty. A document whose stored fields
	// are unreadable is still listed, with nil Fields.
	ListAll(ctx context.Context, collection string) ([]models.Document, error)
}

// DocumentWriter creates, updates and deletes documents.
type DocumentWriter interface {
	// Create persists a new document. The doc.ID, CreatedAt and UpdatedAt
	// fields are populated by the store.
	Create(ctx context.Context, doc *models.Document) error

	// Update replaces the fields of an existing document.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes a document. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, collection, id string) error
}

// DocumentWatcher streams collection snapshots.
type DocumentWatcher interface {
	// Watch sends the current contents of the collection and then a new
	// snapshot after every write to it. The channel is closed once ctx is done.
	Watch(ctx context.Context, collection string) (<-chan []models.Document, error)
}

// DocumentStore defines the interface for document storage operations.
// This abstraction allows swapping storage backends without changing the
// loaders or services.
type DocumentStore interface {
	DocumentReader
	DocumentWriter
	DocumentWatcher

	// Get retrieves one document. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, collection, id string) (*models.Document, error)

	// Close releases any resources held by the store.
	Close() error
}
