package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DisplayName string    `gorm:"size:255;not null" json:"display_name"`
	Email       string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	UserLogin   string    `gorm:"size:60;index" json:"user_login"`
	AvatarURL   string    `gorm:"type:text" json:"avatar_url"`
	Role        string    `gorm:"size:20;default:'student'" json:"role"`
	Password    string    `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
