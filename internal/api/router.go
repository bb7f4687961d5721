package api

import (
	"net/http"

	"pulse/internal/middleware"
	"pulse/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires middleware and the full route table. Static
// segments (new, follow, group, ...) take precedence over the
// username wildcard, same contract as the original URL layout.
func SetupRouter(
	userRepo *repository.UserRepository,
	authHandler *AuthHandler,
	postHandler *PostHandler,
	followHandler *FollowHandler,
	mediaDir string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.GinZapLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CurrentUser(userRepo))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/media", mediaDir)

	r.POST("/auth/signup", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)

	r.GET("/", postHandler.Index)
	r.GET("/group/:slug/", postHandler.GroupPosts)
	r.GET("/follow/", followHandler.FollowIndex)
	r.GET("/new/", postHandler.NewPost)
	r.POST("/new/", postHandler.NewPost)

	r.GET("/:username/", postHandler.Profile)
	r.GET("/:username/follow/", followHandler.Follow)
	r.GET("/:username/unfollow/", followHandler.Unfollow)
	r.GET("/:username/:post_id/", postHandler.ViewPost)
	r.POST("/:username/:post_id/", postHandler.SubmitComment)
	r.GET("/:username/:post_id/edit/", postHandler.EditPost)
	r.POST("/:username/:post_id/edit/", postHandler.EditPost)
	r.POST("/:username/:post_id/comment/", postHandler.AddComment)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found", "path": c.Request.URL.Path})
	})

	return r
}
