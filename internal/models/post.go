package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// PostView is a post annotated with its author's username and the reaction
// aggregates derived from current reaction rows.
type PostView struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorID       uuid.UUID `json:"author_id"`
	Username       string    `json:"username"`
	CreatedAt      time.Time `json:"created_at"`
	LikeCount      int64     `json:"like_count"`
	DislikeCount   int64     `json:"dislike_count"`
	LikedByUser    bool      `json:"liked_by_user"`
	DislikedByUser bool      `json:"disliked_by_user"`
}
