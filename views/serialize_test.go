package views

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rpupo63/blog-site/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeaser(t *testing.T) {
	assert.Equal(t, "short", Teaser("short"))
	assert.Equal(t, strings.Repeat("a", 200), Teaser(strings.Repeat("a", 250)))

	cyrillic := strings.Repeat("ж", 201)
	teaser := Teaser(cyrillic)
	assert.Equal(t, 200, len([]rune(teaser)))
	assert.True(t, strings.HasPrefix(cyrillic, teaser))
}

func TestSerializerPost(t *testing.T) {
	s := Serializer{MediaURL: "/media/"}
	published := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	post := &models.Post{
		Title:          "Hello",
		Text:           strings.Repeat("x", 300),
		Slug:           "hello",
		Image:          "covers/hello.jpg",
		PublishedAt:    published,
		Author:         models.User{Username: "ann"},
		CommentsAmount: 3,
		Tags: []models.Tag{
			{Title: "go", PostsWithTag: 4},
			{Title: "web", PostsWithTag: 1},
		},
	}

	view := s.Post(post)
	assert.Equal(t, "Hello", view.Title)
	assert.Len(t, view.TeaserText, 200)
	assert.Equal(t, "ann", view.Author)
	assert.Equal(t, 3, view.CommentsAmount)
	require.NotNil(t, view.ImageURL)
	assert.Equal(t, "/media/covers/hello.jpg", *view.ImageURL)
	assert.Equal(t, published, view.PublishedAt)
	assert.Equal(t, "/posts/hello/", view.URL)
	assert.Equal(t, "go", view.FirstTagTitle)
	assert.Equal(t, []TagView{
		{Title: "go", PostsWithTag: 4, URL: "/tags/go/"},
		{Title: "web", PostsWithTag: 1, URL: "/tags/web/"},
	}, view.Tags)
}

func TestSerializerPostWithoutImageOrTags(t *testing.T) {
	view := Serializer{MediaURL: "/media/"}.Post(&models.Post{Title: "Bare", Slug: "bare"})

	assert.Nil(t, view.ImageURL)
	assert.Equal(t, "", view.FirstTagTitle)
	assert.NotNil(t, view.Tags)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"image_url":null`)
	assert.Contains(t, string(raw), `"comments_amount":0`)
	assert.Contains(t, string(raw), `"tags":[]`)
}

func TestSerializerAbsoluteImage(t *testing.T) {
	view := Serializer{MediaURL: "/media"}.Post(&models.Post{Image: "https://cdn.example/a.png"})
	require.NotNil(t, view.ImageURL)
	assert.Equal(t, "https://cdn.example/a.png", *view.ImageURL)
}

func TestSerializerPostDetailWithoutComments(t *testing.T) {
	post := &models.Post{Title: "Quiet", Slug: "quiet", LikesCount: 2, Author: models.User{Username: "ann"}}

	view := Serializer{}.PostDetail(post, nil)
	assert.Equal(t, 2, view.LikesAmount)
	assert.NotNil(t, view.Comments)
	assert.Empty(t, view.Comments)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"comments":[]`)
}

func TestSerializerComment(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	view := Serializer{}.Comment(&models.Comment{Text: "nice", PublishedAt: at, Author: models.User{Username: "bob"}})
	assert.Equal(t, CommentView{Text: "nice", PublishedAt: at, Author: "bob"}, view)
}
