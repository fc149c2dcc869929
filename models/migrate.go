package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All lists every model in dependency order. Join tables (post_tags, post_likes)
// are created from the many2many tags.
func All() []any {
	return []any{
		&User{},
		&Tag{},
		&Post{},
		&Comment{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
