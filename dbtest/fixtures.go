package dbtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/rpupo63/blog-site/models"
	"gorm.io/gorm"
)

// Base is the publication time fixtures count from.
var Base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func User(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, IsStaff: true}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func Tag(t testing.TB, db *gorm.DB, title string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Title: title}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag %s: %v", title, err)
	}
	return tag
}

// Post creates a post published hoursAgo hours before Base.
func Post(t testing.TB, db *gorm.DB, author *models.User, slug string, hoursAgo int, tags ...*models.Tag) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:       fmt.Sprintf("Post %s", slug),
		Text:        fmt.Sprintf("Body of %s", slug),
		Slug:        slug,
		PublishedAt: Base.Add(-time.Duration(hoursAgo) * time.Hour),
		AuthorID:    author.ID,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create post %s: %v", slug, err)
	}
	if len(tags) > 0 {
		if err := db.Model(p).Association("Tags").Append(tags); err != nil {
			t.Fatalf("tag post %s: %v", slug, err)
		}
	}
	return p
}

func Like(t testing.TB, db *gorm.DB, post *models.Post, users ...*models.User) {
	t.Helper()
	if len(users) == 0 {
		return
	}
	if err := db.Model(post).Association("Likes").Append(users); err != nil {
		t.Fatalf("like post %s: %v", post.Slug, err)
	}
}

func Comment(t testing.TB, db *gorm.DB, post *models.Post, author *models.User, text string, minutesAfter int) *models.Comment {
	t.Helper()
	c := &models.Comment{
		PostID:      post.ID,
		AuthorID:    author.ID,
		Text:        text,
		PublishedAt: post.PublishedAt.Add(time.Duration(minutesAfter) * time.Minute),
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create comment on %s: %v", post.Slug, err)
	}
	return c
}
