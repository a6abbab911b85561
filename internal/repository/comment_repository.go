package repository

import (
	"errors"

	"github.com/forumhq/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) GetCommentByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").Where("id = ?", id).First(&comment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &comment, nil
}

// ListCommentsByPost returns a post's comments oldest-first (chronological
// reading order) with their authors preloaded.
func (r *CommentRepository) ListCommentsByPost(postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error

	return comments, err
}

func (r *CommentRepository) DeleteComment(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Comment{}).Error
}
