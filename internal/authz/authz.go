// Package authz holds the pure authorization predicates applied to every
// mutating operation. Decisions depend only on the arguments; callers map a
// false result to a forbidden error.
package authz

import (
	"github.com/forumhq/backend/internal/models"
	"github.com/google/uuid"
)

// CanMutate reports whether subject may delete the resource owned by ownerID.
// Admins override ownership.
func CanMutate(subjectID uuid.UUID, subjectRole models.Role, ownerID uuid.UUID) bool {
	return subjectRole == models.RoleAdmin || subjectID == ownerID
}

// CanEdit reports whether subject may edit the resource owned by ownerID.
// Editing is owner-only: admins may delete others' posts but not rewrite them.
func CanEdit(subjectID uuid.UUID, ownerID uuid.UUID) bool {
	return subjectID == ownerID
}
