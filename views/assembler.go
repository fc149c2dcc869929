// Package views builds the page view models for the public site.
package views

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-site/errs"
	"github.com/rpupo63/blog-site/models"
)

const (
	SidebarSize     = 5
	TagPagePostsMax = 20
)

// PostQuerier is the part of the query layer the pages read posts through.
type PostQuerier interface {
	Popular(ctx context.Context, limit int) ([]*models.Post, error)
	Fresh(ctx context.Context, limit int) ([]*models.Post, error)
	TaggedWith(ctx context.Context, tag *models.Tag, limit int) ([]*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	WithCommentCounts(ctx context.Context, posts []*models.Post) ([]*models.Post, error)
	WithTags(ctx context.Context, posts []*models.Post) ([]*models.Post, error)
}

type TagQuerier interface {
	Popular(ctx context.Context, limit int) ([]*models.Tag, error)
	FindByTitle(ctx context.Context, title string) (*models.Tag, error)
}

type CommentQuerier interface {
	ListForPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
}

type HomePage struct {
	MostPopularPosts []PostView `json:"most_popular_posts"`
	PagePosts        []PostView `json:"page_posts"`
	PopularTags      []TagView  `json:"popular_tags"`
}

type PostDetailPage struct {
	Post             PostDetailView `json:"post"`
	PopularTags      []TagView      `json:"popular_tags"`
	MostPopularPosts []PostView     `json:"most_popular_posts"`
}

type TagFilterPage struct {
	Tag              string     `json:"tag"`
	PopularTags      []TagView  `json:"popular_tags"`
	Posts            []PostView `json:"posts"`
	MostPopularPosts []PostView `json:"most_popular_posts"`
}

// Assembler builds one page per call. Every call runs its own queries; nothing is
// kept between calls.
type Assembler struct {
	posts      PostQuerier
	tags       TagQuerier
	comments   CommentQuerier
	serializer Serializer
}

func NewAssembler(posts PostQuerier, tags TagQuerier, comments CommentQuerier, serializer Serializer) *Assembler {
	return &Assembler{posts: posts, tags: tags, comments: comments, serializer: serializer}
}

func (a *Assembler) Home(ctx context.Context) (HomePage, error) {
	popular, err := a.popularPosts(ctx)
	if err != nil {
		return HomePage{}, err
	}

	fresh, err := a.posts.Fresh(ctx, SidebarSize)
	if err != nil {
		return HomePage{}, errs.NewDatabaseError("list", "fresh posts", err)
	}
	if fresh, err = a.posts.WithTags(ctx, fresh); err != nil {
		return HomePage{}, errs.NewDatabaseError("load tags of", "fresh posts", err)
	}

	tags, err := a.popularTags(ctx)
	if err != nil {
		return HomePage{}, err
	}

	return HomePage{
		MostPopularPosts: popular,
		PagePosts:        a.serializer.Posts(fresh),
		PopularTags:      tags,
	}, nil
}

func (a *Assembler) PostDetail(ctx context.Context, slug string) (PostDetailPage, error) {
	post, err := a.posts.FindBySlug(ctx, slug)
	if err != nil {
		return PostDetailPage{}, errs.NewDatabaseError("find", "post", err)
	}

	comments, err := a.comments.ListForPost(ctx, post.ID)
	if err != nil {
		return PostDetailPage{}, errs.NewDatabaseError("list", "comments", err)
	}
	if _, err := a.posts.WithTags(ctx, []*models.Post{post}); err != nil {
		return PostDetailPage{}, errs.NewDatabaseError("load tags of", "post", err)
	}

	tags, err := a.popularTags(ctx)
	if err != nil {
		return PostDetailPage{}, err
	}
	popular, err := a.popularPosts(ctx)
	if err != nil {
		return PostDetailPage{}, err
	}

	return PostDetailPage{
		Post:             a.serializer.PostDetail(post, comments),
		PopularTags:      tags,
		MostPopularPosts: popular,
	}, nil
}

func (a *Assembler) TagFilter(ctx context.Context, title string) (TagFilterPage, error) {
	tag, err := a.tags.FindByTitle(ctx, title)
	if err != nil {
		return TagFilterPage{}, errs.NewDatabaseError("find", "tag", err)
	}

	tags, err := a.popularTags(ctx)
	if err != nil {
		return TagFilterPage{}, err
	}
	popular, err := a.popularPosts(ctx)
	if err != nil {
		return TagFilterPage{}, err
	}

	related, err := a.posts.TaggedWith(ctx, tag, TagPagePostsMax)
	if err != nil {
		return TagFilterPage{}, errs.NewDatabaseError("list", "tagged posts", err)
	}
	if related, err = a.annotate(ctx, related); err != nil {
		return TagFilterPage{}, err
	}

	return TagFilterPage{
		Tag:              tag.Title,
		PopularTags:      tags,
		Posts:            a.serializer.Posts(related),
		MostPopularPosts: popular,
	}, nil
}

func (a *Assembler) popularPosts(ctx context.Context) ([]PostView, error) {
	posts, err := a.posts.Popular(ctx, SidebarSize)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "popular posts", err)
	}
	if posts, err = a.annotate(ctx, posts); err != nil {
		return nil, err
	}
	return a.serializer.Posts(posts), nil
}

func (a *Assembler) popularTags(ctx context.Context) ([]TagView, error) {
	tags, err := a.tags.Popular(ctx, SidebarSize)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "popular tags", err)
	}
	views := make([]TagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, a.serializer.Tag(*tag))
	}
	return views, nil
}

// annotate attaches tags and comment counts, each with one query for the whole set.
func (a *Assembler) annotate(ctx context.Context, posts []*models.Post) ([]*models.Post, error) {
	posts, err := a.posts.WithTags(ctx, posts)
	if err != nil {
		return nil, errs.NewDatabaseError("load tags of", "posts", err)
	}
	posts, err = a.posts.WithCommentCounts(ctx, posts)
	if err != nil {
		return nil, errs.NewDatabaseError("count comments of", "posts", err)
	}
	return posts, nil
}
