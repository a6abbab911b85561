package service

import (
	"github.com/forumhq/backend/internal/apperr"
	"github.com/forumhq/backend/internal/authz"
	"github.com/forumhq/backend/internal/models"
	"github.com/forumhq/backend/internal/repository"
	"github.com/forumhq/backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	postRepo     *repository.PostRepository
	reactionRepo *repository.ReactionRepository
}

func NewPostService(postRepo *repository.PostRepository, reactionRepo *repository.ReactionRepository) *PostService {
	return &PostService{
		postRepo:     postRepo,
		reactionRepo: reactionRepo,
	}
}

func (s *PostService) CreatePost(authorID uuid.UUID, username, title, content string) (*models.PostView, error) {
	if err := validatePostInput(title, content); err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:       uuid.New(),
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}

	if err := s.postRepo.CreatePost(post); err != nil {
		logger.Log.Error("Failed to create post",
			zap.String("author_id", authorID.String()),
			zap.Error(err),
		)
		return nil, apperr.Storage(err)
	}

	logger.Log.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("author_id", authorID.String()),
	)

	view := postToView(post, username)
	return &view, nil
}

// UpdatePost rewrites a post's title and content. Owner-only: admins may
// delete others' posts but not edit them.
func (s *PostService) UpdatePost(postID, subjectID uuid.UUID, title, content string) (*models.PostView, error) {
	if err := validatePostInput(title, content); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		logger.Log.Error("Failed to load post for update",
			zap.String("post_id", postID.String()),
			zap.Error(err),
		)
		return nil, apperr.Storage(err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	if !authz.CanEdit(subjectID, post.AuthorID) {
		logger.Log.Warn("Post update denied",
			zap.String("post_id", postID.String()),
			zap.String("subject_id", subjectID.String()),
		)
		return nil, apperr.Authorization("only the author can edit this post")
	}

	if err := s.postRepo.UpdatePost(postID, title, content); err != nil {
		logger.Log.Error("Failed to update post",
			zap.String("post_id", postID.String()),
			zap.Error(err),
		)
		return nil, apperr.Storage(err)
	}

	post.Title = title
	post.Content = content

	counts, err := s.reactionRepo.CountForPost(postID)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	view := postToView(post, post.Author.Username)
	view.LikeCount = counts.LikeCount
	view.DislikeCount = counts.DislikeCount
	return &view, nil
}

// DeletePost removes a post with its comments and reactions. Owner or admin.
func (s *PostService) DeletePost(postID, subjectID uuid.UUID, subjectRole models.Role) error {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		logger.Log.Error("Failed to load post for deletion",
			zap.String("post_id", postID.String()),
			zap.Error(err),
		)
		return apperr.Storage(err)
	}
	if post == nil {
		return apperr.NotFound("post not found")
	}

	if !authz.CanMutate(subjectID, subjectRole, post.AuthorID) {
		logger.Log.Warn("Post deletion denied",
			zap.String("post_id", postID.String()),
			zap.String("subject_id", subjectID.String()),
		)
		return apperr.Authorization("not allowed to delete this post")
	}

	if err := s.postRepo.DeletePostCascade(postID); err != nil {
		logger.Log.Error("Failed to delete post",
			zap.String("post_id", postID.String()),
			zap.Error(err),
		)
		return apperr.Storage(err)
	}

	logger.Log.Info("Post deleted",
		zap.String("post_id", postID.String()),
		zap.String("subject_id", subjectID.String()),
		zap.Bool("by_admin", subjectRole == models.RoleAdmin),
	)

	return nil
}

// ListPosts returns all posts newest-first with reaction aggregates. When a
// viewer identity is available their own stance is annotated per post.
func (s *PostService) ListPosts(viewerID *uuid.UUID) ([]models.PostView, error) {
	posts, err := s.postRepo.ListPosts()
	if err != nil {
		logger.Log.Error("Failed to list posts", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	postIDs := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	counts, err := s.reactionRepo.CountForPosts(postIDs)
	if err != nil {
		logger.Log.Error("Failed to load reaction counts", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	var viewerKinds map[uuid.UUID]models.ReactionKind
	if viewerID != nil {
		viewerKinds, err = s.reactionRepo.UserKindsForPosts(postIDs, *viewerID)
		if err != nil {
			logger.Log.Error("Failed to load viewer reactions", zap.Error(err))
			return nil, apperr.Storage(err)
		}
	}

	views := make([]models.PostView, 0, len(posts))
	for i := range posts {
		view := postToView(&posts[i], posts[i].Author.Username)
		c := counts[posts[i].ID]
		view.LikeCount = c.LikeCount
		view.DislikeCount = c.DislikeCount
		if viewerKinds != nil {
			switch viewerKinds[posts[i].ID] {
			case models.ReactionLike:
				view.LikedByUser = true
			case models.ReactionDislike:
				view.DislikedByUser = true
			}
		}
		views = append(views, view)
	}

	return views, nil
}

func validatePostInput(title, content string) error {
	if len(title) < 5 || len(title) > 200 {
		return apperr.Validation("title must be between 5 and 200 characters")
	}
	if len(content) < 10 {
		return apperr.Validation("content must be at least 10 characters")
	}
	return nil
}

func postToView(post *models.Post, username string) models.PostView {
	return models.PostView{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		Username:  username,
		CreatedAt: post.CreatedAt,
	}
}
