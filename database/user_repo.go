package database

import (
	"context"

	"github.com/rpupo63/blog-site/errs"
	"github.com/rpupo63/blog-site/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// GetOrCreate returns the user with username, creating a staff account when absent.
func (r *UserRepo) GetOrCreate(ctx context.Context, username string) (*models.User, error) {
	user := models.User{Username: username, IsStaff: true}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).
		Where(models.User{Username: username}).
		Attrs(models.User{IsStaff: true}).
		FirstOrCreate(&user).Error
	if err != nil && errs.IsConflict(errs.NewDatabaseError("create", "user", err)) {
		user = models.User{}
		err = r.db.WithContext(ctx).Where(models.User{Username: username}).Take(&user).Error
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
