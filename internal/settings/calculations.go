package settings

import (
	"time"

	"github.com/mmynk/tipsplit/internal/loader"
	"github.com/mmynk/tipsplit/internal/models"
)

// Calculations is the saved calculations collection. It is not a settings
// screen but follows the same load-then-manage pattern.
var Calculations = Domain[models.SavedCalculation]{
	Collection: models.CollectionCalculations,
	Decode:     DecodeSavedCalculation,
	ID:         func(c models.SavedCalculation) string { return c.ID },
}

// DecodeSavedCalculation validates a saved calculation document. Derived
// amounts are taken as stored.
func DecodeSavedCalculation(doc models.Document) (models.SavedCalculation, error) {
	var c models.SavedCalculation
	if err := requireInteger(doc, "people"); err != nil {
		return c, err
	}
	if err := decodeFields(doc, &c); err != nil {
		return c, err
	}
	if c.UserID == "" {
		return c, &loader.DecodeError{DocumentID: doc.ID, Field: "userId", Reason: "required"}
	}
	name, err := requireName(doc, c.Name)
	if err != nil {
		return c, err
	}
	if c.People < 0 {
		return c, &loader.DecodeError{DocumentID: doc.ID, Field: "people", Reason: "cannot be negative"}
	}
	if _, err := time.Parse(time.RFC3339, c.CreatedAt); err != nil {
		return c, &loader.DecodeError{DocumentID: doc.ID, Field: "createdAt", Reason: "must be an RFC 3339 timestamp"}
	}
	c.ID = doc.ID
	c.Name = name
	return c, nil
}

// CalculationFields converts a calculation into document fields.
func CalculationFields(c models.SavedCalculation) (map[string]any, error) {
	return toFields(c)
}
