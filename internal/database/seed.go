package database

import (
	"errors"

	"github.com/forumhq/backend/internal/config"
	"github.com/forumhq/backend/internal/models"
	"github.com/forumhq/backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnsureAdmin creates the admin account if no user with the configured
// admin username exists. Called at process start and by cmd/seed.
func EnsureAdmin(db *gorm.DB, cfg *config.Config) (*models.User, bool, error) {
	var admin models.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&admin).Error
	if err == nil {
		return &admin, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	passwordHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, false, err
	}

	admin = models.User{
		ID:           uuid.New(),
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return nil, false, err
	}

	return &admin, true, nil
}
