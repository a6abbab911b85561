package repository

import (
	"errors"

	"github.com/forumhq/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) GetPostByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Where("id = ?", id).First(&post).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &post, nil
}

// ListPosts returns all posts newest-first with their authors preloaded.
func (r *PostRepository) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error

	return posts, err
}

func (r *PostRepository) UpdatePost(id uuid.UUID, title, content string) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		}).Error
}

// DeletePostCascade removes a post with its comments and reactions in a
// single transaction.
func (r *PostRepository) DeletePostCascade(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
}
