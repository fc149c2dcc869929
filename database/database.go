package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Database struct {
	db          *gorm.DB
	postRepo    *PostRepo
	tagRepo     *TagRepo
	commentRepo *CommentRepo
	userRepo    *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		postRepo:    NewPostRepo(db),
		tagRepo:     NewTagRepo(db),
		commentRepo: NewCommentRepo(db),
		userRepo:    NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Ping checks that the store answers.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
