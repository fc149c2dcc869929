package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-site/errs"
	"github.com/rpupo63/blog-site/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// Popular returns up to limit tags ordered by how many posts carry them.
func (r *TagRepo) Popular(ctx context.Context, limit int) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).
		Scopes(PopularTags).
		Limit(limit).
		Find(&tags).Error
	return tags, err
}

// FindByTitle looks a tag up by title in any letter case.
// A missing tag is an errs.ErrNotFound.
func (r *TagRepo) FindByTitle(ctx context.Context, title string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Select("tags.*, "+postsWithTagColumn).
		Where("tags.title = ?", models.NormalizeTagTitle(title)).
		Take(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("tag")
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetOrCreate returns the tag whose normalized title matches, creating it when absent.
// "Travel" and "travel" resolve to the same row.
func (r *TagRepo) GetOrCreate(ctx context.Context, title string) (*models.Tag, error) {
	tag := models.Tag{Title: title}
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	title = models.NormalizeTagTitle(title)
	tag.Title = title

	err := r.db.WithContext(ctx).
		Where(models.Tag{Title: title}).
		FirstOrCreate(&tag).Error
	if err != nil && errs.IsConflict(errs.NewDatabaseError("create", "tag", err)) {
		// Another writer inserted the title between our lookup and insert.
		tag = models.Tag{}
		err = r.db.WithContext(ctx).Where(models.Tag{Title: title}).Take(&tag).Error
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

type postTagRow struct {
	PostID       uuid.UUID
	ID           uuid.UUID
	Title        string
	PostsWithTag int
}

// LoadForPosts returns the tags of every given post, keyed by post id, in one query.
// Each tag carries its PostsWithTag count. Tags are ordered by title; posts without
// tags are absent from the map.
func (r *TagRepo) LoadForPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]models.Tag, error) {
	tagsByPost := make(map[uuid.UUID][]models.Tag, len(postIDs))
	if len(postIDs) == 0 {
		return tagsByPost, nil
	}

	var rows []postTagRow
	err := r.db.WithContext(ctx).
		Table("tags").
		Select("post_tags.post_id, tags.id, tags.title, "+postsWithTagColumn).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id IN ?", postIDs).
		Order("tags.title ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		tagsByPost[row.PostID] = append(tagsByPost[row.PostID], models.Tag{
			ID:           row.ID,
			Title:        row.Title,
			PostsWithTag: row.PostsWithTag,
		})
	}
	return tagsByPost, nil
}
