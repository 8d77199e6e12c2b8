package settings

import (
	"github.com/mmynk/tipsplit/internal/loader"
	"github.com/mmynk/tipsplit/internal/models"
)

// EmployeePositions is the employee-positions collection.
var EmployeePositions = Domain[models.EmployeePosition]{
	Collection: models.CollectionEmployeePositions,
	Decode:     DecodeEmployeePosition,
	ID:         func(p models.EmployeePosition) string { return p.ID },
}

// DecodeEmployeePosition validates an employee position document.
// Tip points weight the position's share of the tip pool and cannot be negative.
func DecodeEmployeePosition(doc models.Document) (models.EmployeePosition, error) {
	var p models.EmployeePosition
	if err := decodeFields(doc, &p); err != nil {
		return p, err
	}
	name, err := requireName(doc, p.Name)
	if err != nil {
		return p, err
	}
	if p.TipPoints < 0 {
		return p, &loader.DecodeError{DocumentID: doc.ID, Field: "tipPoints", Reason: "cannot be negative"}
	}
	p.ID = doc.ID
	p.Name = name
	return p, nil
}
