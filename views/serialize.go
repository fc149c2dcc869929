package views

import (
	"strings"
	"time"

	"github.com/rpupo63/blog-site/models"
)

// TeaserLength is how many characters of a post body a listing shows.
const TeaserLength = 200

type TagView struct {
	Title        string `json:"title"`
	PostsWithTag int    `json:"posts_with_tag"`
	URL          string `json:"url"`
}

type PostView struct {
	Title          string    `json:"title"`
	TeaserText     string    `json:"teaser_text"`
	Author         string    `json:"author"`
	CommentsAmount int       `json:"comments_amount"`
	ImageURL       *string   `json:"image_url"`
	PublishedAt    time.Time `json:"published_at"`
	Slug           string    `json:"slug"`
	URL            string    `json:"url"`
	Tags           []TagView `json:"tags"`
	FirstTagTitle  string    `json:"first_tag_title"`
}

type CommentView struct {
	Text        string    `json:"text"`
	PublishedAt time.Time `json:"published_at"`
	Author      string    `json:"author"`
}

type PostDetailView struct {
	Title       string        `json:"title"`
	Text        string        `json:"text"`
	Author      string        `json:"author"`
	Comments    []CommentView `json:"comments"`
	LikesAmount int           `json:"likes_amount"`
	ImageURL    *string       `json:"image_url"`
	PublishedAt time.Time     `json:"published_at"`
	Slug        string        `json:"slug"`
	Tags        []TagView     `json:"tags"`
}

// Serializer turns loaded entities into view models. It only reads fields the query
// layer already filled and never touches the database.
type Serializer struct {
	MediaURL string
}

func (s Serializer) Tag(tag models.Tag) TagView {
	return TagView{
		Title:        tag.Title,
		PostsWithTag: tag.PostsWithTag,
		URL:          tag.AbsoluteURL(),
	}
}

func (s Serializer) Tags(tags []models.Tag) []TagView {
	views := make([]TagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, s.Tag(tag))
	}
	return views
}

func (s Serializer) Post(post *models.Post) PostView {
	return PostView{
		Title:          post.Title,
		TeaserText:     Teaser(post.Text),
		Author:         post.Author.Username,
		CommentsAmount: post.CommentsAmount,
		ImageURL:       s.imageURL(post.Image),
		PublishedAt:    post.PublishedAt,
		Slug:           post.Slug,
		URL:            post.AbsoluteURL(),
		Tags:           s.Tags(post.Tags),
		FirstTagTitle:  post.FirstTagTitle(),
	}
}

func (s Serializer) Posts(posts []*models.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, s.Post(post))
	}
	return views
}

func (s Serializer) Comment(comment *models.Comment) CommentView {
	return CommentView{
		Text:        comment.Text,
		PublishedAt: comment.PublishedAt,
		Author:      comment.Author.Username,
	}
}

func (s Serializer) PostDetail(post *models.Post, comments []*models.Comment) PostDetailView {
	commentViews := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		commentViews = append(commentViews, s.Comment(c))
	}
	return PostDetailView{
		Title:       post.Title,
		Text:        post.Text,
		Author:      post.Author.Username,
		Comments:    commentViews,
		LikesAmount: post.LikesCount,
		ImageURL:    s.imageURL(post.Image),
		PublishedAt: post.PublishedAt,
		Slug:        post.Slug,
		Tags:        s.Tags(post.Tags),
	}
}

func (s Serializer) imageURL(image string) *string {
	if image == "" {
		return nil
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return &image
	}
	u := strings.TrimSuffix(s.MediaURL, "/") + "/" + strings.TrimPrefix(image, "/")
	return &u
}

// Teaser returns the first TeaserLength characters of text.
func Teaser(text string) string {
	runes := []rune(text)
	if len(runes) <= TeaserLength {
		return text
	}
	return string(runes[:TeaserLength])
}
