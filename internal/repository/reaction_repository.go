package repository

import (
	"errors"

	"github.com/forumhq/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostReactionCounts holds per-post like/dislike aggregates.
type PostReactionCounts struct {
	LikeCount    int64
	DislikeCount int64
}

// ReactionRepository exposes the reaction table through single-statement
// operations. Each mutator is one atomic statement guarded by RowsAffected,
// so the engine never needs a read-then-write gap that a concurrent request
// could slip into.
type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// DeleteMatching removes the (post, user) reaction only if it has the given
// kind. Returns true if a row was removed (toggle off).
func (r *ReactionRepository) DeleteMatching(postID, userID uuid.UUID, kind models.ReactionKind) (bool, error) {
	res := r.db.
		Where("post_id = ? AND user_id = ? AND kind = ?", postID, userID, kind).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SwitchKind flips the (post, user) reaction to kind only if it currently
// holds the other kind. A conditional update keeps the switch atomic; the
// unique (post, user) constraint is never released mid-transition.
func (r *ReactionRepository) SwitchKind(postID, userID uuid.UUID, kind models.ReactionKind) (bool, error) {
	res := r.db.Model(&models.Reaction{}).
		Where("post_id = ? AND user_id = ? AND kind <> ?", postID, userID, kind).
		Update("kind", kind)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Insert adds a fresh reaction row. Returns gorm.ErrDuplicatedKey when a
// concurrent call inserted first; the caller treats that as a lost race, not
// a failure.
func (r *ReactionRepository) Insert(reaction *models.Reaction) error {
	return r.db.Create(reaction).Error
}

// IsDuplicateKey reports whether err is the uniqueness violation raised by
// the (post, user) index.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// CountForPost returns current like/dislike totals for one post.
func (r *ReactionRepository) CountForPost(postID uuid.UUID) (PostReactionCounts, error) {
	var counts PostReactionCounts

	err := r.db.Model(&models.Reaction{}).
		Where("post_id = ? AND kind = ?", postID, models.ReactionLike).
		Count(&counts.LikeCount).Error
	if err != nil {
		return counts, err
	}

	err = r.db.Model(&models.Reaction{}).
		Where("post_id = ? AND kind = ?", postID, models.ReactionDislike).
		Count(&counts.DislikeCount).Error

	return counts, err
}

// GetUserKind returns the caller's current stance on a post, if any.
func (r *ReactionRepository) GetUserKind(postID, userID uuid.UUID) (models.ReactionKind, bool, error) {
	var reaction models.Reaction
	err := r.db.
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return reaction.Kind, true, nil
}

// CountForPosts batch-loads like/dislike totals for a set of posts.
func (r *ReactionRepository) CountForPosts(postIDs []uuid.UUID) (map[uuid.UUID]PostReactionCounts, error) {
	counts := make(map[uuid.UUID]PostReactionCounts, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uuid.UUID
		Kind   models.ReactionKind
		Total  int64
	}
	err := r.db.Model(&models.Reaction{}).
		Select("post_id, kind, COUNT(*) as total").
		Where("post_id IN ?", postIDs).
		Group("post_id, kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		c := counts[row.PostID]
		switch row.Kind {
		case models.ReactionLike:
			c.LikeCount = row.Total
		case models.ReactionDislike:
			c.DislikeCount = row.Total
		}
		counts[row.PostID] = c
	}

	return counts, nil
}

// UserKindsForPosts batch-loads the caller's stances across a set of posts.
func (r *ReactionRepository) UserKindsForPosts(postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]models.ReactionKind, error) {
	kinds := make(map[uuid.UUID]models.ReactionKind, len(postIDs))
	if len(postIDs) == 0 {
		return kinds, nil
	}

	var rows []models.Reaction
	err := r.db.
		Where("post_id IN ? AND user_id = ?", postIDs, userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		kinds[row.PostID] = row.Kind
	}

	return kinds, nil
}
