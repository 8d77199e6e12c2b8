package settings

import (
	"github.com/mmynk/tipsplit/internal/models"
)

// Phases is the phases collection.
var Phases = Domain[models.Phase]{
	Collection: models.CollectionPhases,
	Decode:     DecodePhase,
	ID:         func(p models.Phase) string { return p.ID },
}

// DecodePhase validates a phase document.
func DecodePhase(doc models.Document) (models.Phase, error) {
	var p models.Phase
	if err := requireInteger(doc, "order"); err != nil {
		return p, err
	}
	if err := decodeFields(doc, &p); err != nil {
		return p, err
	}
	name, err := requireName(doc, p.Name)
	if err != nil {
		return p, err
	}
	p.ID = doc.ID
	p.Name = name
	return p, nil
}
