package model

// Group is a named topical category posts may optionally belong to.
// The slug is the public lookup key.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:varchar(200)" json:"description"`
	Slug        string `gorm:"type:varchar(70);not null;uniqueIndex" json:"slug"`

	Posts []Post `gorm:"foreignKey:GroupID" json:"-"`
}
