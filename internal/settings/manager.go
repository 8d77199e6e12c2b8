package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmynk/tipsplit/internal/loader"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/storage"
)

// Manager owns create/update/delete for one collection after a loader has
// handed off its initial entities. It keeps its own copy of the list in
// sync with its writes; there is no channel back to the loader.
type Manager[T any] struct {
	domain Domain[T]
	store  storage.DocumentWriter
	logger *slog.Logger

	mu       sync.Mutex
	entities []T
}

// NewManager takes ownership of initial, the ordered list produced by a loader.
func (d Domain[T]) NewManager(initial []T, store storage.DocumentWriter, logger *slog.Logger) *Manager[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager[T]{
		domain:   d,
		store:    store,
		logger:   logger.With("collection", d.Collection),
		entities: slices.Clone(initial),
	}
}

// Entities returns a copy of the managed list in order.
func (m *Manager[T]) Entities() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entities)
}

// Create validates fields, stores a new document and appends the entity.
// Validation failures are returned as *loader.DecodeError.
func (m *Manager[T]) Create(ctx context.Context, fields map[string]any) (T, error) {
	var zero T

	doc, err := m.normalize("", fields)
	if err != nil {
		return zero, err
	}
	if err := m.store.Create(ctx, doc); err != nil {
		m.logger.Error("Create failed", "error", err)
		return zero, fmt.Errorf("failed to create %s: %w", m.domain.Collection, err)
	}

	entity, err := m.domain.Decode(*doc)
	if err != nil {
		return zero, err
	}

	m.mu.Lock()
	m.entities = append(m.entities, entity)
	m.mu.Unlock()

	m.logger.Info("Entity created", "id", doc.ID)
	return entity, nil
}

// Update validates fields and replaces the document with the given id.
// Returns storage.ErrNotFound (wrapped) if it does not exist.
func (m *Manager[T]) Update(ctx context.Context, id string, fields map[string]any) (T, error) {
	var zero T

	doc, err := m.normalize(id, fields)
	if err != nil {
		return zero, err
	}
	if err := m.store.Update(ctx, doc); err != nil {
		return zero, fmt.Errorf("failed to update %s/%s: %w", m.domain.Collection, id, err)
	}

	entity, err := m.domain.Decode(*doc)
	if err != nil {
		return zero, err
	}

	m.mu.Lock()
	if i := m.indexOf(id); i >= 0 {
		m.entities[i] = entity
	} else {
		m.entities = append(m.entities, entity)
	}
	m.mu.Unlock()

	m.logger.Info("Entity updated", "id", id)
	return entity, nil
}

// Delete removes the document with the given id.
func (m *Manager[T]) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, m.domain.Collection, id); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", m.domain.Collection, id, err)
	}

	m.mu.Lock()
	if i := m.indexOf(id); i >= 0 {
		m.entities = slices.Delete(m.entities, i, i+1)
	}
	m.mu.Unlock()

	m.logger.Info("Entity deleted", "id", id)
	return nil
}

// normalize validates the raw fields through the domain decoder and
// rebuilds them from the decoded entity, so only known fields are stored.
func (m *Manager[T]) normalize(id string, fields map[string]any) (*models.Document, error) {
	doc := models.Document{ID: id, Collection: m.domain.Collection, Fields: fields}
	entity, err := m.domain.Decode(doc)
	if err != nil {
		var decodeErr *loader.DecodeError
		if errors.As(err, &decodeErr) && decodeErr.Collection == "" {
			decodeErr.Collection = m.domain.Collection
		}
		return nil, err
	}
	clean, err := toFields(entity)
	if err != nil {
		return nil, err
	}
	doc.Fields = clean
	return &doc, nil
}

// indexOf must be called with m.mu held.
func (m *Manager[T]) indexOf(id string) int {
	return slices.IndexFunc(m.entities, func(e T) bool { return m.domain.ID(e) == id })
}
