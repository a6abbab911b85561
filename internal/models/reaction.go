package models

import (
	"time"

	"github.com/google/uuid"
)

// ReactionKind is the stance a user takes on a post.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Valid reports whether k is one of the two accepted kinds.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// Reaction holds a user's stance on a post. The composite unique index
// enforces at most one row per (post, user) pair; the reaction engine relies
// on it to detect concurrent inserts.
type Reaction struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_post_user" json:"post_id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_post_user" json:"user_id"`
	Kind      ReactionKind `gorm:"type:varchar(10);not null" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ReactionSummary is the post-transition aggregate returned to the caller.
// It is recomputed from current rows after every transition and is the
// source of truth clients reconcile against.
type ReactionSummary struct {
	LikeCount      int64 `json:"like_count"`
	DislikeCount   int64 `json:"dislike_count"`
	LikedByUser    bool  `json:"liked_by_user"`
	DislikedByUser bool  `json:"disliked_by_user"`
}
