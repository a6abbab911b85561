package authz

import (
	"testing"

	"github.com/forumhq/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	testCases := []struct {
		name    string
		subject uuid.UUID
		role    models.Role
		want    bool
	}{
		{"owner_may_mutate", owner, models.RoleUser, true},
		{"stranger_may_not", stranger, models.RoleUser, false},
		{"admin_overrides", stranger, models.RoleAdmin, true},
		{"admin_owner", owner, models.RoleAdmin, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanMutate(tc.subject, tc.role, owner))
		})
	}
}

func TestCanEdit(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	assert.True(t, CanEdit(owner, owner))
	assert.False(t, CanEdit(stranger, owner), "Editing is owner-only, even for admins")
}
