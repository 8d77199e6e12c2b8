package loader

import (
	"errors"

	"github.com/mmynk/tipsplit/internal/models"
)

// DecodeFunc turns one document into an entity. Returning a *DecodeError
// keeps its field detail; any other error is wrapped into one.
type DecodeFunc[T any] func(doc models.Document) (T, error)

// DecodeAll decodes every document, collecting failures instead of stopping
// at the first one.
func DecodeAll[T any](collection string, docs []models.Document, decode DecodeFunc[T]) ([]T, []*DecodeError) {
	entities := make([]T, 0, len(docs))
	var skipped []*DecodeError

	for _, doc := range docs {
		if doc.Fields == nil {
			skipped = append(skipped, &DecodeError{Collection: collection, DocumentID: doc.ID, Reason: "stored fields are unreadable"})
			continue
		}
		entity, err := decode(doc)
		if err != nil {
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				decodeErr = &DecodeError{DocumentID: doc.ID, Reason: err.Error()}
			}
			if decodeErr.Collection == "" {
				decodeErr.Collection = collection
			}
			if decodeErr.DocumentID == "" {
				decodeErr.DocumentID = doc.ID
			}
			skipped = append(skipped, decodeErr)
			continue
		}
		entities = append(entities, entity)
	}

	return entities, skipped
}
