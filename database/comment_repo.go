package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-site/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// ListForPost returns the post's comments with their authors, oldest first.
func (r *CommentRepo) ListForPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("comments.post_id = ?", postID).
		Order("comments.published_at ASC").
		Order("comments.id ASC").
		Find(&comments).Error
	return comments, err
}

type postCommentCount struct {
	PostID uuid.UUID
	Amount int
}

// CountForPosts counts comments per post with one grouped query. Posts without
// comments are absent from the map.
func (r *CommentRepo) CountForPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []postCommentCount
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS amount").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Amount
	}
	return counts, nil
}

// Add validates and inserts a comment.
func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(comment).Error
}
