package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-site/dbtest"
	"github.com/rpupo63/blog-site/errs"
	"github.com/rpupo63/blog-site/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTagRepo_Popular(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewTagRepo(db)
	author := dbtest.User(t, db, "author")

	tags := map[string]*models.Tag{}
	for _, title := range []string{"alpha", "beta", "gamma", "delta", "eps", "zeta", "unused"} {
		tags[title] = dbtest.Tag(t, db, title)
	}
	usage := map[string]int{"gamma": 4, "alpha": 2, "beta": 2, "delta": 1, "eps": 1, "zeta": 1}
	n := 0
	for title, times := range usage {
		for i := 0; i < times; i++ {
			dbtest.Post(t, db, author, fmt.Sprintf("%s-%d", title, i), n, tags[title])
			n++
		}
	}

	popular, err := repo.Popular(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, popular, 5)

	got := make([]string, len(popular))
	for i, tag := range popular {
		got[i] = fmt.Sprintf("%s:%d", tag.Title, tag.PostsWithTag)
		if i > 0 {
			assert.GreaterOrEqual(t, popular[i-1].PostsWithTag, tag.PostsWithTag)
		}
	}
	assert.Equal(t, []string{"gamma:4", "alpha:2", "beta:2", "delta:1", "eps:1"}, got)
}

func TestTagRepo_FindByTitle(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewTagRepo(db)
	ctx := context.Background()
	author := dbtest.User(t, db, "author")
	travel := dbtest.Tag(t, db, "travel")
	dbtest.Post(t, db, author, "trip", 1, travel)

	found, err := repo.FindByTitle(ctx, "Travel")
	require.NoError(t, err)
	assert.Equal(t, travel.ID, found.ID)
	assert.Equal(t, 1, found.PostsWithTag)

	_, err = repo.FindByTitle(ctx, "cooking")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestTagRepo_GetOrCreateIsCaseInsensitive(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewTagRepo(db)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "Travel")
	require.NoError(t, err)
	assert.Equal(t, "travel", first.Title)

	second, err := repo.GetOrCreate(ctx, "travel")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	third, err := repo.GetOrCreate(ctx, " TRAVEL ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = repo.GetOrCreate(ctx, "a-title-well-over-twenty-characters")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidField(err))
}

func TestTagRepo_GetOrCreateLosesInsertRace(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewTagRepo(db)

	// The first empty lookup on tags is followed by a competing insert of the same title,
	// so GetOrCreate's own insert hits the unique index.
	var winner models.Tag
	raced := false
	err := db.Callback().Query().After("gorm:query").Register("test:insert_race", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "tags" || tx.Statement.RowsAffected != 0 {
			return
		}
		raced = true
		winner = models.Tag{Title: "travel"}
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Create(&winner).Error)
	})
	require.NoError(t, err)

	tag, err := repo.GetOrCreate(context.Background(), "Travel")
	require.NoError(t, err)
	assert.True(t, raced)
	assert.Equal(t, winner.ID, tag.ID)
	assert.Equal(t, "travel", tag.Title)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTagRepo_LoadForPostsEmpty(t *testing.T) {
	db := dbtest.Open(t)

	got, err := NewTagRepo(db).LoadForPosts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = NewTagRepo(db).LoadForPosts(context.Background(), []uuid.UUID{uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, got)
}
