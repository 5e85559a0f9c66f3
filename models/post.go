package models

import "gorm.io/gorm"

// Post is a user-authored bubble. Ownership never transfers; only the owner
// may read or mutate it, enforced by the handlers, not here.
type Post struct {
	gorm.Model
	Title   string `gorm:"type:varchar(255);not null"`
	Content string `gorm:"type:text;not null"`
	UserID  uint   `gorm:"not null;index"`
}

func (Post) TableName() string {
	return "posts"
}
