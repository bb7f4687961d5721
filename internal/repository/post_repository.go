package repository

import (
	"errors"

	"pulse/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postOrder is the default ordering for every listing: newest first.
// The id tiebreak keeps same-second posts stable.
const postOrder = "pub_date DESC, id DESC"

// PostRepository handles post persistence.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Omit(clause.Associations).Create(post).Error
}

// Update persists changes on an already loaded post. Associations are
// omitted so a preloaded (possibly stale) Author or Group is never
// written back.
func (r *PostRepository) Update(post *model.Post) error {
	return r.db.Omit(clause.Associations).Save(post).Error
}

func (r *PostRepository) FindByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// FindByAuthorAndID resolves a post by its (author, id) pair. A post id
// that exists under a different author counts as not found.
func (r *PostRepository) FindByAuthorAndID(authorID, postID uint) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("author_id = ?", authorID).
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) FindAll() ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Preload("Author").Preload("Group").
		Order(postOrder).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByGroup(groupID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("group_id = ?", groupID).
		Order(postOrder).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByAuthor(authorID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("author_id = ?", authorID).
		Order(postOrder).
		Find(&posts).Error
	return posts, err
}

// FindFeed returns the posts authored by anyone userID follows.
func (r *PostRepository) FindFeed(userID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("author_id IN (?)",
			r.db.Model(&model.Follow{}).Select("author_id").Where("user_id = ?", userID)).
		Order(postOrder).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Count(&count).Error
	return count, err
}

func (r *PostRepository) Delete(id uint) error {
	return r.db.Delete(&model.Post{}, id).Error
}
