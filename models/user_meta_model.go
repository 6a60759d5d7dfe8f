package models

import "github.com/google/uuid"

type UserMeta struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_meta" json:"user_id"`
	MetaKey   string    `gorm:"size:255;not null;uniqueIndex:idx_user_meta" json:"meta_key"`
	MetaValue string    `gorm:"type:text" json:"meta_value"`
}
