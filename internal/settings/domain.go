// Package settings wires the loader pattern to the four settings
// collections and provides the Manager that owns mutation once a loader has
// handed off its entities.
package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/mmynk/tipsplit/internal/loader"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/session"
	"github.com/mmynk/tipsplit/internal/storage"
)

// Domain describes one settings collection.
type Domain[T any] struct {
	Collection string
	Decode     loader.DecodeFunc[T]
	ID         func(T) string
}

// NewLoader returns a loader for the domain's collection.
func (d Domain[T]) NewLoader(sessions session.Provider, store storage.DocumentReader, logger *slog.Logger) *loader.Loader[T] {
	return loader.New(d.Collection, d.Decode, sessions, store, logger)
}

// decodeFields fills out from the document fields using the json tags of T.
// Number and slice types must already match; nothing is coerced from strings.
func decodeFields[T any](doc models.Document, out *T) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(doc.Fields); err != nil {
		return &loader.DecodeError{DocumentID: doc.ID, Reason: err.Error()}
	}
	return nil
}

// toFields converts a decoded entity back into JSON-compatible document
// fields, dropping the id which lives outside the fields.
func toFields[T any](entity T) (map[string]any, error) {
	b, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}

func requireName(doc models.Document, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &loader.DecodeError{DocumentID: doc.ID, Field: "name", Reason: "required"}
	}
	return name, nil
}

// maxExactInteger is the largest whole number a float64 field holds exactly.
const maxExactInteger = 1 << 53

// requireInteger checks a numeric field before mapstructure truncates it
// into an int, which would silently wrap out-of-range values.
func requireInteger(doc models.Document, field string) error {
	v, ok := doc.Fields[field].(float64)
	if !ok {
		return nil
	}
	if v != math.Trunc(v) {
		return &loader.DecodeError{DocumentID: doc.ID, Field: field, Reason: "must be a whole number"}
	}
	if math.Abs(v) > maxExactInteger {
		return &loader.DecodeError{DocumentID: doc.ID, Field: field, Reason: "out of range"}
	}
	return nil
}
