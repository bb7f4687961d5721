package repository

import (
	"pulse/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository handles comment persistence.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

// FindByPost returns a post's comments, newest first.
func (r *CommentRepository) FindByPost(postID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created DESC, id DESC").
		Find(&comments).Error
	return comments, err
}
