package service

import (
	"pulse/internal/model"
	"pulse/internal/repository"
)

// FollowService manages follow edges and the resulting feed.
type FollowService struct {
	followRepo *repository.FollowRepository
	postRepo   *repository.PostRepository
}

func NewFollowService(followRepo *repository.FollowRepository, postRepo *repository.PostRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		postRepo:   postRepo,
	}
}

// IsFollowing reports whether user already follows author.
func (s *FollowService) IsFollowing(userID, authorID uint) (bool, error) {
	return s.followRepo.Exists(userID, authorID)
}

// Follow creates the edge if it does not exist yet. Following an
// already-followed author is a no-op. Self-follow is rejected.
func (s *FollowService) Follow(userID, authorID uint) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	_, err := s.followRepo.GetOrCreate(userID, authorID)
	return err
}

// Unfollow removes the edge. ErrNotFollowing when there is none.
func (s *FollowService) Unfollow(userID, authorID uint) error {
	follow, err := s.followRepo.Find(userID, authorID)
	if err != nil {
		return err
	}
	if follow == nil {
		return ErrNotFollowing
	}
	return s.followRepo.Delete(follow)
}

// Feed returns the posts authored by everyone userID follows, newest
// first.
func (s *FollowService) Feed(userID uint) ([]model.Post, error) {
	return s.postRepo.FindFeed(userID)
}
