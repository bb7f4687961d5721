package api

import (
	"errors"
	"net/http"

	"pulse/internal/model"
	"pulse/internal/repository"
	"pulse/internal/service"
	"pulse/pkg/logger"
	"pulse/pkg/pagination"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FollowHandler implements the follow feed and the follow/unfollow
// actions.
type FollowHandler struct {
	users         *repository.UserRepository
	followService *service.FollowService
}

func NewFollowHandler(users *repository.UserRepository, followService *service.FollowService) *FollowHandler {
	return &FollowHandler{
		users:         users,
		followService: followService,
	}
}

// FollowIndex is the personal feed: posts by every followed author.
func (h *FollowHandler) FollowIndex(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	h.renderFeed(c, user)
}

// Follow creates the edge to the target author and renders the feed.
// Following an already-followed author is a no-op; following yourself
// redirects back to the profile without creating anything.
func (h *FollowHandler) Follow(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	author, ok := h.resolveAuthor(c)
	if !ok {
		return
	}

	if err := h.followService.Follow(user.ID, author.ID); err != nil {
		if errors.Is(err, service.ErrSelfFollow) {
			c.Redirect(http.StatusFound, "/"+author.Username+"/")
			return
		}
		logger.L.Error("Failed to follow author", zap.Error(err), zap.Uint("userID", user.ID), zap.Uint("authorID", author.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow author"})
		return
	}

	h.renderFeed(c, user)
}

// Unfollow deletes the edge to the target author and renders the
// feed. Unfollowing someone never followed is a 404.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	author, ok := h.resolveAuthor(c)
	if !ok {
		return
	}

	if err := h.followService.Unfollow(user.ID, author.ID); err != nil {
		if errors.Is(err, service.ErrNotFollowing) {
			notFound(c, "follow")
			return
		}
		logger.L.Error("Failed to unfollow author", zap.Error(err), zap.Uint("userID", user.ID), zap.Uint("authorID", author.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow author"})
		return
	}

	h.renderFeed(c, user)
}

func (h *FollowHandler) renderFeed(c *gin.Context, user *model.User) {
	posts, err := h.followService.Feed(user.ID)
	if err != nil {
		logger.L.Error("Failed to build feed", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build feed"})
		return
	}

	page := pagination.Paginate(posts, pageNumber(c), perPage())
	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *FollowHandler) resolveAuthor(c *gin.Context) (*model.User, bool) {
	author, err := h.users.FindByUsername(c.Param("username"))
	if err != nil {
		logger.L.Error("Failed to look up user", zap.Error(err), zap.String("username", c.Param("username")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return nil, false
	}
	if author == nil {
		notFound(c, "user")
		return nil, false
	}
	return author, true
}
