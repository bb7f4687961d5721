package repository

import (
	"errors"

	"pulse/internal/model"

	"gorm.io/gorm"
)

// GroupRepository handles group persistence. Groups are created by an
// administrator and looked up by slug.
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(group *model.Group) error {
	return r.db.Create(group).Error
}

// FindBySlug returns (nil, nil) when no group carries the slug.
func (r *GroupRepository) FindBySlug(slug string) (*model.Group, error) {
	var group model.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) FindByID(id uint) (*model.Group, error) {
	var group model.Group
	if err := r.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// Delete removes the group. Posts referencing it keep existing with a
// nulled group reference (SET NULL constraint).
func (r *GroupRepository) Delete(id uint) error {
	return r.db.Delete(&model.Group{}, id).Error
}
