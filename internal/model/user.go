package model

import (
	"time"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"type:varchar(30);not null;uniqueIndex" json:"username"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password  string `gorm:"type:varchar(100);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	Posts []Post `gorm:"foreignKey:AuthorID" json:"-"`
}
