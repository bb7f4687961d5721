package repository

import (
	"errors"

	"pulse/internal/model"

	"gorm.io/gorm"
)

// FollowRepository handles follow edges between users.
type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// GetOrCreate ensures a single follow edge for the (user, author)
// pair. The unique index on the pair backs this up when two requests
// race: the loser's insert fails and is resolved with a re-read.
func (r *FollowRepository) GetOrCreate(userID, authorID uint) (*model.Follow, error) {
	follow := model.Follow{UserID: &userID, AuthorID: &authorID}
	err := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&follow).Error
	if err != nil {
		if existing, findErr := r.Find(userID, authorID); findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return &follow, nil
}

// Find returns (nil, nil) when the edge does not exist.
func (r *FollowRepository) Find(userID, authorID uint) (*model.Follow, error) {
	var follow model.Follow
	err := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

func (r *FollowRepository) Exists(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// Delete removes exactly the given edge.
func (r *FollowRepository) Delete(follow *model.Follow) error {
	return r.db.Delete(follow).Error
}
