package settings

import (
	"github.com/mmynk/tipsplit/internal/models"
)

// Projects is the projects collection.
var Projects = Domain[models.Project]{
	Collection: models.CollectionProjects,
	Decode:     DecodeProject,
	ID:         func(p models.Project) string { return p.ID },
}

// DecodeProject validates a project document.
func DecodeProject(doc models.Document) (models.Project, error) {
	var p models.Project
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
