package database_test

import (
	"testing"

	"github.com/forumhq/backend/internal/config"
	"github.com/forumhq/backend/internal/database"
	"github.com/forumhq/backend/internal/models"
	"github.com/forumhq/backend/internal/testutil"
	"github.com/forumhq/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedConfig() *config.Config {
	return &config.Config{
		AdminUsername: "admin",
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin123",
	}
}

func TestEnsureAdminCreatesAccount(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	testutil.CleanDatabase(t, testDB.DB)

	admin, created, err := database.EnsureAdmin(testDB.DB, seedConfig())

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	ok, err := utils.VerifyPassword("admin123", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnsureAdminIdempotent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	testutil.CleanDatabase(t, testDB.DB)

	first, created, err := database.EnsureAdmin(testDB.DB, seedConfig())
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := database.EnsureAdmin(testDB.DB, seedConfig())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	testDB.DB.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// A changed ADMIN_PASSWORD does not rewrite an existing account.
func TestEnsureAdminKeepsExistingCredentials(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)
	testutil.CleanDatabase(t, testDB.DB)

	_, _, err := database.EnsureAdmin(testDB.DB, seedConfig())
	require.NoError(t, err)

	cfg := seedConfig()
	cfg.AdminPassword = "changed-later"
	admin, created, err := database.EnsureAdmin(testDB.DB, cfg)

	require.NoError(t, err)
	assert.False(t, created)

	ok, err := utils.VerifyPassword("admin123", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}
