package service

import (
	"strings"

	"pulse/internal/model"
	"pulse/internal/repository"
)

// CommentInput is the typed shape of the comment form.
type CommentInput struct {
	Text string
}

// CommentService validates comment input and persists comments.
type CommentService struct {
	commentRepo *repository.CommentRepository
}

func NewCommentService(commentRepo *repository.CommentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
	}
}

func (s *CommentService) Validate(input CommentInput) ValidationErrors {
	if strings.TrimSpace(input.Text) == "" {
		return ValidationErrors{"text": "text is required"}
	}
	return nil
}

// Create validates the input, attaches the author and the post and
// persists a new comment. Nothing is written when validation fails.
func (s *CommentService) Create(authorID, postID uint, input CommentInput) (*model.Comment, ValidationErrors, error) {
	if errs := s.Validate(input); !errs.Valid() {
		return nil, errs, nil
	}

	comment := &model.Comment{
		Text:     input.Text,
		AuthorID: authorID,
		PostID:   postID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, nil, err
	}
	return comment, nil, nil
}

// ForPost returns a post's comments, newest first.
func (s *CommentService) ForPost(postID uint) ([]model.Comment, error) {
	return s.commentRepo.FindByPost(postID)
}
