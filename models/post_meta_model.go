package models

import "github.com/google/uuid"

// PostMeta is a single key/value row attached to a post. One row per
// (post, key); writes upsert.
type PostMeta struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_meta" json:"post_id"`
	MetaKey   string    `gorm:"size:255;not null;uniqueIndex:idx_post_meta" json:"meta_key"`
	MetaValue string    `gorm:"type:text" json:"meta_value"`
}
