package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/rpupo63/blog-site/dbtest"
	"github.com/rpupo63/blog-site/errs"
	"github.com/rpupo63/blog-site/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepo_Popular(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPostRepo(db)
	ctx := context.Background()

	author := dbtest.User(t, db, "author")
	readers := make([]*models.User, 4)
	for i := range readers {
		readers[i] = dbtest.User(t, db, fmt.Sprintf("reader%d", i))
	}

	quiet := dbtest.Post(t, db, author, "quiet", 1)
	liked := dbtest.Post(t, db, author, "liked", 5)
	loved := dbtest.Post(t, db, author, "loved", 10)
	tieOld := dbtest.Post(t, db, author, "tie-old", 20)
	tieNew := dbtest.Post(t, db, author, "tie-new", 2)
	dbtest.Post(t, db, author, "ignored", 30)

	dbtest.Like(t, db, loved, readers...)
	dbtest.Like(t, db, liked, readers[:3]...)
	dbtest.Like(t, db, tieOld, readers[:1]...)
	dbtest.Like(t, db, tieNew, readers[1:2]...)
	// liking twice still counts one liker
	dbtest.Like(t, db, tieNew, readers[1])

	posts, err := repo.Popular(ctx, 5)
	require.NoError(t, err)
	require.Len(t, posts, 5)

	slugs := make([]string, len(posts))
	for i, p := range posts {
		slugs[i] = p.Slug
		assert.Equal(t, "author", p.Author.Username)
		if i > 0 {
			assert.GreaterOrEqual(t, posts[i-1].LikesCount, p.LikesCount)
		}
	}
	assert.Equal(t, []string{"loved", "liked", "tie-new", "tie-old", quiet.Slug}, slugs)
	assert.Equal(t, 4, posts[0].LikesCount)
	assert.Equal(t, 1, posts[2].LikesCount)
}

func TestPostRepo_PopularEmpty(t *testing.T) {
	db := dbtest.Open(t)

	posts, err := NewPostRepo(db).Popular(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepo_FreshCountsComments(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPostRepo(db)
	author := dbtest.User(t, db, "author")

	older := dbtest.Post(t, db, author, "older", 48)
	newer := dbtest.Post(t, db, author, "newer", 1)
	dbtest.Comment(t, db, older, author, "one", 1)
	dbtest.Comment(t, db, older, author, "two", 2)

	posts, err := repo.Fresh(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, 0, posts[0].CommentsAmount)
	assert.Equal(t, 2, posts[1].CommentsAmount)
	assert.Equal(t, "author", posts[1].Author.Username)
}

func TestPostRepo_WithCommentCounts(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPostRepo(db)
	ctx := context.Background()
	author := dbtest.User(t, db, "author")

	busy := dbtest.Post(t, db, author, "busy", 1)
	silent := dbtest.Post(t, db, author, "silent", 2)
	for i := 0; i < 3; i++ {
		dbtest.Comment(t, db, busy, author, fmt.Sprintf("c%d", i), i)
	}

	posts, err := repo.WithCommentCounts(ctx, []*models.Post{busy, silent})
	require.NoError(t, err)
	assert.Equal(t, 3, posts[0].CommentsAmount)
	assert.Equal(t, 0, posts[1].CommentsAmount)

	// counts are read at query time, not remembered
	dbtest.Comment(t, db, silent, author, "late", 10)
	posts, err = repo.WithCommentCounts(ctx, []*models.Post{busy, silent})
	require.NoError(t, err)
	assert.Equal(t, 1, posts[1].CommentsAmount)

	empty, err := repo.WithCommentCounts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostRepo_WithTags(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPostRepo(db)
	author := dbtest.User(t, db, "author")

	travel := dbtest.Tag(t, db, "Travel")
	food := dbtest.Tag(t, db, "food")
	art := dbtest.Tag(t, db, "art")

	a := dbtest.Post(t, db, author, "a", 1, travel, food, art)
	b := dbtest.Post(t, db, author, "b", 2, travel)
	c := dbtest.Post(t, db, author, "c", 3, travel, food)
	bare := dbtest.Post(t, db, author, "bare", 4)

	posts, err := repo.WithTags(context.Background(), []*models.Post{a, b, c, bare})
	require.NoError(t, err)

	titles := func(p *models.Post) []string {
		out := []string{}
		for _, tag := range p.Tags {
			out = append(out, tag.Title)
		}
		return out
	}
	assert.Equal(t, []string{"art", "food", "travel"}, titles(posts[0]))
	assert.Equal(t, []string{"travel"}, titles(posts[1]))
	assert.Equal(t, []string{"food", "travel"}, titles(posts[2]))
	assert.NotNil(t, posts[3].Tags)
	assert.Empty(t, posts[3].Tags)

	counts := map[string]int{}
	for _, tag := range posts[0].Tags {
		counts[tag.Title] = tag.PostsWithTag
	}
	assert.Equal(t, map[string]int{"art": 1, "food": 2, "travel": 3}, counts)
}

func TestPostRepo_TaggedWith(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPostRepo(db)
	author := dbtest.User(t, db, "author")
	travel := dbtest.Tag(t, db, "travel")
	other := dbtest.Tag(t, db, "other")

	for i := 0; i < 25; i++ {
		dbtest.Post(t, db, author, fmt.Sprintf("trip-%02d", i), i, travel)
	}
	dbtest.Post(t, db, author, "elsewhere", 0, other)

	posts, err := repo.TaggedWith(context.Background(), travel, 20)
	require.NoError(t, err)
	require.Len(t, posts, 20)
	assert.Equal(t, "trip-00", posts[0].Slug)

	posts, err = repo.WithTags(context.Background(), posts)
	require.NoError(t, err)
	for _, p := range posts {
		titles := []string{}
		for _, tag := range p.Tags {
			titles = append(titles, tag.Title)
		}
		assert.Contains(t, titles, "travel")
		assert.Equal(t, "author", p.Author.Username)
	}
}

func TestPostRepo_FindBySlug(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPostRepo(db)
	ctx := context.Background()
	author := dbtest.User(t, db, "author")
	fan := dbtest.User(t, db, "fan")

	post := dbtest.Post(t, db, author, "hello", 1)
	dbtest.Like(t, db, post, author, fan)

	found, err := repo.FindBySlug(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)
	assert.Equal(t, 2, found.LikesCount)
	assert.Equal(t, "author", found.Author.Username)

	missing, err := repo.FindBySlug(ctx, "no-such-post")
	assert.Nil(t, missing)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestPostRepo_AddValidates(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPostRepo(db)

	err := repo.Add(context.Background(), &models.Post{Title: "No author", Slug: "no-author"})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidField(err))
}
