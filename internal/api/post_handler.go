package api

import (
	"net/http"
	"strconv"

	"pulse/internal/model"
	"pulse/internal/repository"
	"pulse/internal/service"
	"pulse/pkg/logger"
	"pulse/pkg/pagination"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler implements the post listings and the post/comment forms.
type PostHandler struct {
	posts          *repository.PostRepository
	groups         *repository.GroupRepository
	users          *repository.UserRepository
	postService    *service.PostService
	commentService *service.CommentService
	followService  *service.FollowService
}

func NewPostHandler(
	posts *repository.PostRepository,
	groups *repository.GroupRepository,
	users *repository.UserRepository,
	postService *service.PostService,
	commentService *service.CommentService,
	followService *service.FollowService,
) *PostHandler {
	return &PostHandler{
		posts:          posts,
		groups:         groups,
		users:          users,
		postService:    postService,
		commentService: commentService,
		followService:  followService,
	}
}

// Index is the home feed: every post, newest first, paginated.
func (h *PostHandler) Index(c *gin.Context) {
	posts, err := h.posts.FindAll()
	if err != nil {
		logger.L.Error("Failed to list posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}

	page := pagination.Paginate(posts, pageNumber(c), perPage())
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// GroupPosts lists the posts of one group, resolved by slug.
func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, err := h.groups.FindBySlug(c.Param("slug"))
	if err != nil {
		logger.L.Error("Failed to look up group", zap.Error(err), zap.String("slug", c.Param("slug")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up group"})
		return
	}
	if group == nil {
		notFound(c, "group")
		return
	}

	posts, err := h.posts.FindByGroup(group.ID)
	if err != nil {
		logger.L.Error("Failed to list group posts", zap.Error(err), zap.Uint("groupID", group.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}

	page := pagination.Paginate(posts, pageNumber(c), perPage())
	c.JSON(http.StatusOK, gin.H{"group": group, "page": page})
}

// Profile shows an author's posts plus whether the requesting user
// already follows them.
func (h *PostHandler) Profile(c *gin.Context) {
	author, err := h.users.FindByUsername(c.Param("username"))
	if err != nil {
		logger.L.Error("Failed to look up user", zap.Error(err), zap.String("username", c.Param("username")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if author == nil {
		notFound(c, "user")
		return
	}

	posts, err := h.posts.FindByAuthor(author.ID)
	if err != nil {
		logger.L.Error("Failed to list author posts", zap.Error(err), zap.Uint("authorID", author.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}

	following := false
	if user, ok := currentUser(c); ok {
		following, err = h.followService.IsFollowing(user.ID, author.ID)
		if err != nil {
			logger.L.Error("Failed to check follow state", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check follow state"})
			return
		}
	}

	page := pagination.Paginate(posts, pageNumber(c), perPage())
	c.JSON(http.StatusOK, gin.H{
		"author":    author,
		"page":      page,
		"following": following,
	})
}

// NewPost serves the creation form on GET and handles the submission
// on POST. Validation failures re-render the form with HTTP 200.
func (h *PostHandler) NewPost(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{"form": blankPostForm()})
		return
	}

	input, errs := parsePostInput(c)
	if errs.Valid() {
		_, errs, ok = h.createPost(c, user, input)
		if !ok {
			return
		}
	}
	if !errs.Valid() {
		c.JSON(http.StatusOK, gin.H{"errors": errs, "form": postForm(input)})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// ViewPost renders one post with its comments and a blank comment
// form. The post is addressed by the (author username, post id) pair.
func (h *PostHandler) ViewPost(c *gin.Context) {
	post, ok := h.resolvePost(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ForPost(post.ID)
	if err != nil {
		logger.L.Error("Failed to list comments", zap.Error(err), zap.Uint("postID", post.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"author":   post.Author,
		"comments": comments,
		"form":     gin.H{"text": ""},
	})
}

// SubmitComment is the POST side of the post view: it validates the
// comment form and redirects back to the view on success.
func (h *PostHandler) SubmitComment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	post, ok := h.resolvePost(c)
	if !ok {
		return
	}

	input := service.CommentInput{Text: c.PostForm("text")}
	_, errs, err := h.commentService.Create(user.ID, post.ID, input)
	if err != nil {
		logger.L.Error("Failed to save comment", zap.Error(err), zap.Uint("postID", post.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		return
	}
	if !errs.Valid() {
		comments, cerr := h.commentService.ForPost(post.ID)
		if cerr != nil {
			logger.L.Error("Failed to list comments", zap.Error(cerr), zap.Uint("postID", post.ID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"post":     post,
			"author":   post.Author,
			"comments": comments,
			"errors":   errs,
			"form":     gin.H{"text": input.Text},
		})
		return
	}

	c.Redirect(http.StatusFound, postPath(c.Param("username"), post.ID))
}

// EditPost lets the author change a post's text, group and image. A
// non-owner is redirected to the read view without an error.
func (h *PostHandler) EditPost(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	username := c.Param("username")
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	if username != user.Username {
		c.Redirect(http.StatusFound, postPath(username, postID))
		return
	}

	post, err := h.posts.FindByAuthorAndID(user.ID, postID)
	if err != nil {
		logger.L.Error("Failed to look up post", zap.Error(err), zap.Uint("postID", postID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up post"})
		return
	}
	if post == nil {
		notFound(c, "post")
		return
	}

	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{
			"post": post,
			"form": gin.H{"text": post.Text, "group": post.GroupID},
		})
		return
	}

	input, errs := parsePostInput(c)
	if errs.Valid() {
		errs, err = h.postService.Update(post, input)
		if err != nil {
			logger.L.Error("Failed to update post", zap.Error(err), zap.Uint("postID", post.ID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}
	}
	if !errs.Valid() {
		c.JSON(http.StatusOK, gin.H{"errors": errs, "form": postForm(input), "post": post})
		return
	}

	c.Redirect(http.StatusFound, postPath(username, post.ID))
}

// AddComment is the dedicated comment endpoint. On validation failure
// it re-renders the comment list with the errors, HTTP 200.
func (h *PostHandler) AddComment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	post, ok := h.resolvePost(c)
	if !ok {
		return
	}

	input := service.CommentInput{Text: c.PostForm("text")}
	_, errs, err := h.commentService.Create(user.ID, post.ID, input)
	if err != nil {
		logger.L.Error("Failed to save comment", zap.Error(err), zap.Uint("postID", post.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		return
	}
	if !errs.Valid() {
		comments, cerr := h.commentService.ForPost(post.ID)
		if cerr != nil {
			logger.L.Error("Failed to list comments", zap.Error(cerr), zap.Uint("postID", post.ID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"errors":   errs,
			"comments": comments,
			"form":     gin.H{"text": input.Text},
		})
		return
	}

	c.Redirect(http.StatusFound, postPath(c.Param("username"), post.ID))
}

func (h *PostHandler) createPost(c *gin.Context, user *model.User, input service.PostInput) (*model.Post, service.ValidationErrors, bool) {
	post, errs, err := h.postService.Create(user.ID, input)
	if err != nil {
		logger.L.Error("Failed to create post", zap.Error(err), zap.Uint("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return nil, nil, false
	}
	return post, errs, true
}

// resolvePost looks up the post addressed by the path. A post id that
// exists under a different username is a 404, not a different post.
func (h *PostHandler) resolvePost(c *gin.Context) (*model.Post, bool) {
	postID, ok := parsePostID(c)
	if !ok {
		return nil, false
	}

	author, err := h.users.FindByUsername(c.Param("username"))
	if err != nil {
		logger.L.Error("Failed to look up user", zap.Error(err), zap.String("username", c.Param("username")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return nil, false
	}
	if author == nil {
		notFound(c, "post")
		return nil, false
	}

	post, err := h.posts.FindByAuthorAndID(author.ID, postID)
	if err != nil {
		logger.L.Error("Failed to look up post", zap.Error(err), zap.Uint("postID", postID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up post"})
		return nil, false
	}
	if post == nil {
		notFound(c, "post")
		return nil, false
	}
	return post, true
}

// parsePostInput maps the submitted form fields into the typed input.
func parsePostInput(c *gin.Context) (service.PostInput, service.ValidationErrors) {
	input := service.PostInput{Text: c.PostForm("text")}
	errs := service.ValidationErrors{}

	if raw := c.PostForm("group"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			errs["group"] = "group does not exist"
		} else {
			groupID := uint(id)
			input.GroupID = &groupID
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		input.Image = file
	}

	if len(errs) == 0 {
		return input, nil
	}
	return input, errs
}

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		notFound(c, "post")
		return 0, false
	}
	return uint(id), true
}

func postPath(username string, postID uint) string {
	return "/" + username + "/" + strconv.FormatUint(uint64(postID), 10) + "/"
}

func blankPostForm() gin.H {
	return gin.H{"text": "", "group": nil}
}

func postForm(input service.PostInput) gin.H {
	return gin.H{"text": input.Text, "group": input.GroupID}
}
