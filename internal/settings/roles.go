package settings

import (
	"strings"

	"github.com/mmynk/tipsplit/internal/loader"
	"github.com/mmynk/tipsplit/internal/models"
)

// Roles is the roles collection.
var Roles = Domain[models.Role]{
	Collection: models.CollectionRoles,
	Decode:     DecodeRole,
	ID:         func(r models.Role) string { return r.ID },
}

// DecodeRole validates a role document. Permissions must be distinct,
// non-empty strings.
func DecodeRole(doc models.Document) (models.Role, error) {
	var r models.Role
	if err := decodeFields(doc, &r); err != nil {
		return r, err
	}
	name, err := requireName(doc, r.Name)
	if err != nil {
		return r, err
	}

	seen := make(map[string]bool, len(r.Permissions))
	for i, perm := range r.Permissions {
		perm = strings.TrimSpace(perm)
		if perm == "" || seen[perm] {
			return r, &loader.DecodeError{DocumentID: doc.ID, Field: "permissions", Reason: "must be distinct non-empty strings"}
		}
		seen[perm] = true
		r.Permissions[i] = perm
	}

	r.ID = doc.ID
	r.Name = name
	return r, nil
}
