package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is the generic content record everything in Tutor LMS hangs off:
// courses, bundles, lessons and quizzes are all posts distinguished by PostType.
type Post struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	PostType string     `gorm:"size:32;not null;index" json:"post_type"`
	Title    string     `gorm:"size:255;not null" json:"title"`
	Content  string     `gorm:"type:text" json:"content"`
	Slug     string     `gorm:"size:255;index" json:"slug"`
	Status   string     `gorm:"size:20;not null;default:'publish'" json:"status"`
	AuthorID uuid.UUID  `gorm:"type:uuid;index" json:"author_id"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
