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

type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, postRepo *repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) CreateComment(postID, authorID uuid.UUID, username, content string) (*models.CommentView, error) {
	if len(content) < 3 {
		return nil, apperr.Validation("comment must be at least 3 characters")
	}

	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		logger.Log.Error("Failed to load post for comment",
			zap.String("post_id", postID.String()),
			zap.Error(err),
		)
		return nil, apperr.Storage(err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	comment := &models.Comment{
		ID:       uuid.New(),
		Content:  content,
		PostID:   postID,
		AuthorID: authorID,
	}

	if err := s.commentRepo.CreateComment(comment); err != nil {
		logger.Log.Error("Failed to create comment",
			zap.String("post_id", postID.String()),
			zap.String("author_id", authorID.String()),
			zap.Error(err),
		)
		return nil, apperr.Storage(err)
	}

	logger.Log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("post_id", postID.String()),
	)

	view := commentToView(comment, username)
	return &view, nil
}

// ListComments returns a post's comments oldest-first with author usernames.
func (s *CommentService) ListComments(postID uuid.UUID) ([]models.CommentView, error) {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	comments, err := s.commentRepo.ListCommentsByPost(postID)
	if err != nil {
		logger.Log.Error("Failed to list comments",
			zap.String("post_id", postID.String()),
			zap.Error(err),
		)
		return nil, apperr.Storage(err)
	}

	views := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, commentToView(&comments[i], comments[i].Author.Username))
	}
	return views, nil
}

// DeleteComment removes a comment. Owner or admin.
func (s *CommentService) DeleteComment(commentID, subjectID uuid.UUID, subjectRole models.Role) error {
	comment, err := s.commentRepo.GetCommentByID(commentID)
	if err != nil {
		logger.Log.Error("Failed to load comment for deletion",
			zap.String("comment_id", commentID.String()),
			zap.Error(err),
		)
		return apperr.Storage(err)
	}
	if comment == nil {
		return apperr.NotFound("comment not found")
	}

	if !authz.CanMutate(subjectID, subjectRole, comment.AuthorID) {
		logger.Log.Warn("Comment deletion denied",
			zap.String("comment_id", commentID.String()),
			zap.String("subject_id", subjectID.String()),
		)
		return apperr.Authorization("not allowed to delete this comment")
	}

	if err := s.commentRepo.DeleteComment(commentID); err != nil {
		logger.Log.Error("Failed to delete comment",
			zap.String("comment_id", commentID.String()),
			zap.Error(err),
		)
		return apperr.Storage(err)
	}

	logger.Log.Info("Comment deleted",
		zap.String("comment_id", commentID.String()),
		zap.String("subject_id", subjectID.String()),
	)

	return nil
}

func commentToView(comment *models.Comment, username string) models.CommentView {
	return models.CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Username:  username,
		CreatedAt: comment.CreatedAt,
	}
}
