package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reader response. It is deleted together with its post.
type Comment struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PostID      uuid.UUID `json:"post_id" db:"post_id" gorm:"type:uuid;not null;index" validate:"required"`
	Post        Post      `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id" gorm:"type:uuid;not null;index" validate:"required"`
	Author      User      `json:"author" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
	Text        string    `json:"text" db:"text" gorm:"type:text;not null" validate:"required"`
	PublishedAt time.Time `json:"published_at" db:"published_at" gorm:"not null;index"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.PublishedAt.IsZero() {
		c.PublishedAt = time.Now().UTC()
	}
	return nil
}

func (c Comment) String() string {
	return fmt.Sprintf("%s under %s", c.Author.Username, c.Post.Title)
}
