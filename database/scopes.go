package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/blog-site/models"
	"gorm.io/gorm"
)

// Annotation columns. Each is a correlated count, so it always reflects the rows
// present when the query runs.
const (
	likesCountColumn     = "(SELECT COUNT(DISTINCT post_likes.user_id) FROM post_likes WHERE post_likes.post_id = posts.id) AS likes_count"
	commentsAmountColumn = "(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_amount"
	postsWithTagColumn   = "(SELECT COUNT(*) FROM post_tags AS tagged WHERE tagged.tag_id = tags.id) AS posts_with_tag"
)

// PopularPosts annotates likes_count and orders by it, most liked first.
// Ties go to the newer post, then to the lower id.
func PopularPosts(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " + likesCountColumn).
		Order("likes_count DESC").
		Order("posts.published_at DESC").
		Order("posts.id ASC")
}

// FreshPosts annotates comments_amount and orders newest first.
func FreshPosts(db *gorm.DB) *gorm.DB {
	return NewestFirst(db.Select("posts.*, " + commentsAmountColumn))
}

// NewestFirst is the default post ordering.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("posts.published_at DESC").Order("posts.id ASC")
}

// PopularTags annotates posts_with_tag and orders by it. Ties go alphabetically.
func PopularTags(db *gorm.DB) *gorm.DB {
	return db.Select("tags.*, " + postsWithTagColumn).
		Order("posts_with_tag DESC").
		Order("tags.title ASC")
}

// TaggedWith keeps the posts carrying the given tag.
func TaggedWith(tagID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("EXISTS (SELECT 1 FROM post_tags WHERE post_tags.post_id = posts.id AND post_tags.tag_id = ?)", tagID)
	}
}

// WithAuthor loads every post's author in one extra query.
func WithAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("Author")
}

func idsOf(posts []*models.Post) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}
