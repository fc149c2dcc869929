package models

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a published article.
//
// LikesCount and CommentsAmount are never stored. They are filled by the query layer
// for the rows it returns and stay zero on plain loads.
type Post struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Text        string    `json:"text" db:"text" gorm:"type:text;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:varchar(200);not null;uniqueIndex" validate:"required,max=200"`
	Image       string    `json:"image" db:"image" gorm:"type:text"`
	PublishedAt time.Time `json:"published_at" db:"published_at" gorm:"not null;index"`

	AuthorID uuid.UUID `json:"author_id" db:"author_id" gorm:"type:uuid;not null;index" validate:"required"`
	Author   User      `json:"author" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
	Likes    []User    `json:"-" gorm:"many2many:post_likes;constraint:OnDelete:CASCADE" validate:"-"`
	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" validate:"-"`

	LikesCount     int `json:"likes_count" gorm:"->;-:migration"`
	CommentsAmount int `json:"comments_amount" gorm:"->;-:migration"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = time.Now().UTC()
	}
	return nil
}

// AbsoluteURL is the public path of the post detail page.
func (p Post) AbsoluteURL() string {
	return "/posts/" + url.PathEscape(p.Slug) + "/"
}

// FirstTagTitle returns the title of the first loaded tag, or "" for an untagged post.
func (p Post) FirstTagTitle() string {
	if len(p.Tags) == 0 {
		return ""
	}
	return p.Tags[0].Title
}

func (p Post) String() string {
	return p.Title
}
