package model

import (
	"time"
)

// Follow is a directed edge: User wants Author's posts in their feed.
// The composite unique index keeps concurrent follow requests from
// producing duplicate edges. References are nullable so deleting a
// user leaves the other side of the edge intact.
type Follow struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	UserID    *uint `gorm:"uniqueIndex:idx_follow_pair" json:"user_id"`
	AuthorID  *uint `gorm:"uniqueIndex:idx_follow_pair" json:"author_id"`
	CreatedAt time.Time `json:"-"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"-"`
}
