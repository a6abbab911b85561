package service

import (
	"errors"

	"github.com/forumhq/backend/internal/apperr"
	"github.com/forumhq/backend/internal/models"
	"github.com/forumhq/backend/internal/repository"
	"github.com/forumhq/backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errReactionUnsettled = errors.New("reaction state did not settle")

// ReactionService drives the per-(post, user) reaction state machine:
//
//	None     --like-->    Liked      --like-->    None
//	None     --dislike--> Disliked   --dislike--> None
//	Liked    --dislike--> Disliked   (atomic kind switch)
//	Disliked --like-->    Liked      (atomic kind switch)
//
// Every transition is a single conditional statement, so the unique
// (post, user) constraint holds at every instant, including between two
// concurrent calls for the same pair.
type ReactionService struct {
	reactionRepo *repository.ReactionRepository
	postRepo     *repository.PostRepository
}

func NewReactionService(reactionRepo *repository.ReactionRepository, postRepo *repository.PostRepository) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
	}
}

// React applies one transition for (postID, userID) and returns the
// recomputed aggregates. The returned summary is derived from current rows,
// never from the caller's view of the world.
func (s *ReactionService) React(postID, userID uuid.UUID, kind models.ReactionKind) (*models.ReactionSummary, error) {
	if !kind.Valid() {
		return nil, apperr.Validation("type must be 'like' or 'dislike'")
	}

	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		logger.Log.Error("Failed to load post for reaction",
			zap.String("post_id", postID.String()),
			zap.Error(err),
		)
		return nil, apperr.Storage(err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	action, err := s.transition(postID, userID, kind)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarize(postID, userID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Reaction applied",
		zap.String("post_id", postID.String()),
		zap.String("user_id", userID.String()),
		zap.String("kind", string(kind)),
		zap.String("action", action),
	)

	return summary, nil
}

// transition performs exactly one effective write. Order matters:
//
//  1. delete-if-same-kind  — toggle off
//  2. update-if-other-kind — switch, never delete-then-insert
//  3. insert               — fresh reaction
//
// A duplicate-key error on the insert means a concurrent call created the
// row inside our window; one more pass lands on the delete or update branch,
// which is exactly the state the caller would have produced by calling again.
func (s *ReactionService) transition(postID, userID uuid.UUID, kind models.ReactionKind) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		removed, err := s.reactionRepo.DeleteMatching(postID, userID, kind)
		if err != nil {
			return "", apperr.Storage(err)
		}
		if removed {
			return "removed", nil
		}

		switched, err := s.reactionRepo.SwitchKind(postID, userID, kind)
		if err != nil {
			return "", apperr.Storage(err)
		}
		if switched {
			return "switched", nil
		}

		err = s.reactionRepo.Insert(&models.Reaction{
			ID:     uuid.New(),
			PostID: postID,
			UserID: userID,
			Kind:   kind,
		})
		if err == nil {
			return "added", nil
		}
		if repository.IsDuplicateKey(err) {
			logger.Log.Warn("Reaction insert lost race, retrying as toggle",
				zap.String("post_id", postID.String()),
				zap.String("user_id", userID.String()),
			)
			continue
		}
		return "", apperr.Storage(err)
	}

	// Two lost races in a row means the row is churning faster than we can
	// observe it; surface as a store failure rather than looping.
	return "", apperr.Storage(errReactionUnsettled)
}

func (s *ReactionService) summarize(postID, userID uuid.UUID) (*models.ReactionSummary, error) {
	counts, err := s.reactionRepo.CountForPost(postID)
	if err != nil {
		logger.Log.Error("Failed to count reactions",
			zap.String("post_id", postID.String()),
			zap.Error(err),
		)
		return nil, apperr.Storage(err)
	}

	kind, exists, err := s.reactionRepo.GetUserKind(postID, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	return &models.ReactionSummary{
		LikeCount:      counts.LikeCount,
		DislikeCount:   counts.DislikeCount,
		LikedByUser:    exists && kind == models.ReactionLike,
		DislikedByUser: exists && kind == models.ReactionDislike,
	}, nil
}
