package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account that writes posts, comments and likes. Accounts are managed
// elsewhere; the site only ever reads the username.
type User struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username string    `json:"username" db:"username" gorm:"type:varchar(150);not null;uniqueIndex" validate:"required,max=150"`
	IsStaff  bool      `json:"is_staff" db:"is_staff" gorm:"not null;default:false"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u User) String() string {
	return u.Username
}
