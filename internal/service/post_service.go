package service

import (
	"fmt"
	"mime/multipart"
	"strings"

	"pulse/internal/model"
	"pulse/internal/repository"
)

// PostInput is the typed shape of the post form: the optional group,
// the required text and an optional image upload. Handlers map request
// fields into it explicitly.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   *multipart.FileHeader
}

// PostService validates post input and persists posts.
type PostService struct {
	postRepo  *repository.PostRepository
	groupRepo *repository.GroupRepository
	images    *ImageStore
}

func NewPostService(postRepo *repository.PostRepository, groupRepo *repository.GroupRepository, images *ImageStore) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		images:    images,
	}
}

// Validate checks the form input. Field failures come back as
// ValidationErrors; the error return is for persistence faults only.
func (s *PostService) Validate(input PostInput) (ValidationErrors, error) {
	errs := ValidationErrors{}

	if strings.TrimSpace(input.Text) == "" {
		errs["text"] = "text is required"
	}

	if input.GroupID != nil {
		group, err := s.groupRepo.FindByID(*input.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up group: %w", err)
		}
		if group == nil {
			errs["group"] = "group does not exist"
		}
	}

	if msg := s.images.Validate(input.Image); msg != "" {
		errs["image"] = msg
	}

	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

// Create validates the input, attaches the author and persists a new
// post. Nothing is written when validation fails.
func (s *PostService) Create(authorID uint, input PostInput) (*model.Post, ValidationErrors, error) {
	errs, err := s.Validate(input)
	if err != nil {
		return nil, nil, err
	}
	if !errs.Valid() {
		return nil, errs, nil
	}

	post := &model.Post{
		Text:     input.Text,
		GroupID:  input.GroupID,
		AuthorID: authorID,
	}

	if input.Image != nil {
		path, err := s.images.Store(input.Image)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to store image: %w", err)
		}
		post.Image = path
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, nil, err
	}
	return post, nil, nil
}

// Update maps the input onto an existing post field by field. The
// author and publication date are never touched.
func (s *PostService) Update(post *model.Post, input PostInput) (ValidationErrors, error) {
	errs, err := s.Validate(input)
	if err != nil {
		return nil, err
	}
	if !errs.Valid() {
		return errs, nil
	}

	post.Text = input.Text
	post.GroupID = input.GroupID

	if input.Image != nil {
		path, err := s.images.Store(input.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		post.Image = path
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return nil, nil
}
