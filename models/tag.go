package models

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxTagTitleLength = 20

// Tag labels posts. Titles are stored lowercase so two tags never differ only by case.
type Tag struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title string    `json:"title" db:"title" gorm:"type:varchar(20);not null;uniqueIndex;check:chk_tags_title_lower,title = lower(title)" validate:"required,max=20"`
	Posts []Post    `json:"-" gorm:"many2many:post_tags" validate:"-"`

	// PostsWithTag is computed per query.
	PostsWithTag int `json:"posts_with_tag" gorm:"->;-:migration"`
}

// NormalizeTagTitle is the canonical stored form of a tag title.
func NormalizeTagTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// BeforeSave lowercases the title on the model and in whatever the statement is about
// to write, so Update("title", ...) and Updates(map...) are covered too.
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.Title = NormalizeTagTitle(t.Title)

	switch dest := tx.Statement.Dest.(type) {
	case map[string]interface{}:
		for key, value := range dest {
			if title, ok := value.(string); ok && isTitleColumn(key) {
				dest[key] = NormalizeTagTitle(title)
			}
		}
	case *Tag:
		dest.Title = NormalizeTagTitle(dest.Title)
	}
	return nil
}

func isTitleColumn(key string) bool {
	key = strings.TrimPrefix(key, "tags.")
	return key == "title" || key == "Title"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// AbsoluteURL is the public path of the tag filter page.
func (t Tag) AbsoluteURL() string {
	return "/tags/" + url.PathEscape(t.Title) + "/"
}

func (t Tag) String() string {
	return t.Title
}
