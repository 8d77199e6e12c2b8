package models

// Collection names used by the settings screens.
const (
	CollectionPhases            = "phases"
	CollectionEmployeePositions = "employee-positions"
	CollectionProjects          = "projects"
	CollectionRoles             = "roles"
	CollectionCalculations      = "calculations"
)

// Document is one schema-less record of a collection.
type Document struct {
	// ID is assigned by the store on creation (UUID format) and never changes.
	ID string

	// Collection is the name of the collection the document belongs to.
	Collection string

	// Fields holds the document body. Values are JSON-compatible:
	// string, float64, bool, nil, []any and map[string]any.
	Fields map[string]any

	// CreatedAt is the Unix timestamp when the document was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last write.
	UpdatedAt int64
}
