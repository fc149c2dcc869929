// Package seed fills an empty store with demo users, tags, posts, likes and comments.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rpupo63/blog-site/database"
	"github.com/rpupo63/blog-site/errs"
	"github.com/rpupo63/blog-site/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Users       int
	Tags        int
	Posts       int
	MaxComments int
	// RandSeed makes runs reproducible; 0 picks a random seed.
	RandSeed int64
}

func DefaultOptions() Options {
	return Options{Users: 8, Tags: 10, Posts: 30, MaxComments: 6}
}

type Summary struct {
	Skipped  bool
	Users    int
	Tags     int
	Posts    int
	Likes    int
	Comments int
}

type Seeder struct {
	db     database.Database
	logger zerolog.Logger
}

func New(db database.Database) *Seeder {
	return &Seeder{
		db:     db,
		logger: log.With().Str("component", "seed").Logger(),
	}
}

// Run seeds the store unless it already holds posts.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	existing, err := s.db.PostRepo().Count(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("count posts: %w", err)
	}
	if existing > 0 {
		s.logger.Info().Int64("posts", existing).Msg("store already has posts, skipping seed")
		return Summary{Skipped: true}, nil
	}

	faker := gofakeit.New(opts.RandSeed)
	var sum Summary

	users, err := s.users(ctx, faker, opts.Users)
	if err != nil {
		return sum, err
	}
	sum.Users = len(users)

	tags, err := s.tags(ctx, faker, opts.Tags)
	if err != nil {
		return sum, err
	}
	sum.Tags = len(tags)

	now := time.Now().UTC()
	for i := 0; i < opts.Posts; i++ {
		post := &models.Post{
			Title:       strings.TrimSuffix(faker.Sentence(faker.IntRange(3, 8)), "."),
			Text:        faker.Paragraph(faker.IntRange(2, 5), 5, 14, "\n\n"),
			PublishedAt: faker.DateRange(now.AddDate(-1, 0, 0), now).UTC(),
			AuthorID:    users[faker.IntRange(0, len(users)-1)].ID,
		}
		post.Slug = fmt.Sprintf("%s-%d", Slugify(post.Title), i+1)
		post.Tags = pickTags(faker, tags, faker.IntRange(0, 3))

		if err := s.db.PostRepo().Add(ctx, post); err != nil {
			return sum, fmt.Errorf("add post %q: %w", post.Slug, err)
		}
		sum.Posts++

		likers := pickUsers(faker, users, faker.IntRange(0, len(users)))
		if err := s.db.PostRepo().Like(ctx, post, likers...); err != nil {
			return sum, fmt.Errorf("like post %q: %w", post.Slug, err)
		}
		sum.Likes += len(likers)

		for c := faker.IntRange(0, opts.MaxComments); c > 0; c-- {
			comment := &models.Comment{
				PostID:      post.ID,
				AuthorID:    users[faker.IntRange(0, len(users)-1)].ID,
				Text:        faker.Sentence(faker.IntRange(4, 16)),
				PublishedAt: post.PublishedAt.Add(time.Duration(faker.IntRange(1, 72*60)) * time.Minute),
			}
			if err := s.db.CommentRepo().Add(ctx, comment); err != nil {
				return sum, fmt.Errorf("add comment on %q: %w", post.Slug, err)
			}
			sum.Comments++
		}
	}

	s.logger.Info().
		Int("users", sum.Users).
		Int("tags", sum.Tags).
		Int("posts", sum.Posts).
		Int("likes", sum.Likes).
		Int("comments", sum.Comments).
		Msg("demo data seeded")
	return sum, nil
}

func (s *Seeder) users(ctx context.Context, faker *gofakeit.Faker, n int) ([]*models.User, error) {
	if n < 1 {
		n = 1
	}
	users := make([]*models.User, 0, n)
	seen := map[string]bool{}
	for len(users) < n {
		name := strings.ToLower(faker.Username())
		if seen[name] {
			continue
		}
		seen[name] = true
		u, err := s.db.UserRepo().GetOrCreate(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("create user %q: %w", name, err)
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *Seeder) tags(ctx context.Context, faker *gofakeit.Faker, n int) ([]*models.Tag, error) {
	tags := make([]*models.Tag, 0, n)
	seen := map[string]bool{}
	for attempts := 0; len(tags) < n && attempts < n*20; attempts++ {
		title := models.NormalizeTagTitle(faker.Word())
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		tag, err := s.db.TagRepo().GetOrCreate(ctx, title)
		if errs.IsInvalidField(err) {
			// Too long for a tag; draw another word.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create tag %q: %w", title, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func pickTags(faker *gofakeit.Faker, tags []*models.Tag, n int) []models.Tag {
	if n > len(tags) {
		n = len(tags)
	}
	picked := make([]models.Tag, 0, n)
	for _, i := range faker.Rand.Perm(len(tags))[:n] {
		picked = append(picked, *tags[i])
	}
	return picked
}

func pickUsers(faker *gofakeit.Faker, users []*models.User, n int) []*models.User {
	if n > len(users) {
		n = len(users)
	}
	picked := make([]*models.User, 0, n)
	for _, i := range faker.Rand.Perm(len(users))[:n] {
		picked = append(picked, users[i])
	}
	return picked
}

// Slugify lowercases s and joins its letters and digits with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
