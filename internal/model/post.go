package model

import (
	"time"
)

// Post is a publication. The group reference is optional; deleting the
// group keeps the post and nulls the reference, deleting the author
// deletes the post.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	GroupID  *uint     `gorm:"index" json:"group_id"`
	Image    string    `gorm:"type:varchar(255)" json:"image,omitempty"`

	Author User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Group  *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
}
