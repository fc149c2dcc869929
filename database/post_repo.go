package database

import (
	"context"
	"errors"

	"github.com/rpupo63/blog-site/errs"
	"github.com/rpupo63/blog-site/models"
	"gorm.io/gorm"
)

type PostRepo struct {
	db       *gorm.DB
	tags     *TagRepo
	comments *CommentRepo
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db: db, tags: NewTagRepo(db), comments: NewCommentRepo(db)}
}

// Popular returns up to limit posts ordered by distinct likers, with authors loaded.
func (r *PostRepo) Popular(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Scopes(PopularPosts, WithAuthor).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Fresh returns up to limit posts, newest first, with authors and comment counts.
func (r *PostRepo) Fresh(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Scopes(FreshPosts, WithAuthor).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// TaggedWith returns up to limit posts carrying tag, newest first, with authors loaded.
func (r *PostRepo) TaggedWith(ctx context.Context, tag *models.Tag, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Scopes(TaggedWith(tag.ID), NewestFirst, WithAuthor).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// FindBySlug returns the post with its author and likes_count.
// A missing slug is an errs.ErrNotFound.
func (r *PostRepo) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select("posts.*, "+likesCountColumn).
		Scopes(WithAuthor).
		Where("posts.slug = ?", slug).
		Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("post")
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// WithCommentCounts sets CommentsAmount on every post from a single grouped count.
func (r *PostRepo) WithCommentCounts(ctx context.Context, posts []*models.Post) ([]*models.Post, error) {
	if len(posts) == 0 {
		return posts, nil
	}
	counts, err := r.comments.CountForPosts(ctx, idsOf(posts))
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		p.CommentsAmount = counts[p.ID]
	}
	return posts, nil
}

// WithTags replaces every post's Tags with its tags, each annotated with PostsWithTag,
// loaded in a single query.
func (r *PostRepo) WithTags(ctx context.Context, posts []*models.Post) ([]*models.Post, error) {
	if len(posts) == 0 {
		return posts, nil
	}
	tagsByPost, err := r.tags.LoadForPosts(ctx, idsOf(posts))
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		p.Tags = tagsByPost[p.ID]
		if p.Tags == nil {
			p.Tags = []models.Tag{}
		}
	}
	return posts, nil
}

// Add validates and inserts a post together with any tags already attached to it.
func (r *PostRepo) Add(ctx context.Context, post *models.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// Like records users as likers of post. Liking twice is a no-op.
func (r *PostRepo) Like(ctx context.Context, post *models.Post, users ...*models.User) error {
	if len(users) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(post).Association("Likes").Append(users)
}

func (r *PostRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error
	return n, err
}
