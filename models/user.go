package models

import "gorm.io/gorm"

// User is an account holder. Username and Email are unique across all users;
// the unique indexes are the final authority when two registrations race.
type User struct {
	gorm.Model
	Username     string `gorm:"type:varchar(20);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(191);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`

	Posts []Post `gorm:"constraint:OnUpdate:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
