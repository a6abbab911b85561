package testutil

import (
	"time"

	"github.com/forumhq/backend/internal/models"
	"github.com/forumhq/backend/internal/utils"
	"github.com/google/uuid"
)

// CreateTestUser creates a user fixture with a real Argon2id password hash.
func CreateTestUser(username, email, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// CreateTestPost creates a post fixture owned by authorID.
func CreateTestPost(authorID uuid.UUID, title, content string) *models.Post {
	return &models.Post{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
}

// CreateTestComment creates a comment fixture on postID.
func CreateTestComment(postID, authorID uuid.UUID, content string) *models.Comment {
	return &models.Comment{
		ID:        uuid.New(),
		Content:   content,
		PostID:    postID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
}

// CreateTestReaction creates a reaction fixture.
func CreateTestReaction(postID, userID uuid.UUID, kind models.ReactionKind) *models.Reaction {
	return &models.Reaction{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    userID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// DefaultTestUser returns a default regular user fixture.
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("testuser", "test@example.com", "Test123456", models.RoleUser)
}

// DefaultAdminUser returns a default admin fixture.
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("admin", "admin@example.com", "Admin123456", models.RoleAdmin)
}
