package api

import (
	"net/http"
	"net/url"

	"pulse/internal/model"
	"pulse/pkg/config"
	"pulse/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// currentUser returns the authenticated user resolved by the
// middleware, if any.
func currentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

// requireUser guards a protected handler. Unauthenticated requests are
// redirected to the login URL with the original target preserved in
// the next parameter, matching the browser flow of the application.
func requireUser(c *gin.Context) (*model.User, bool) {
	user, ok := currentUser(c)
	if ok {
		return user, true
	}

	loginURL := config.GlobalConfig.App.LoginURL
	if loginURL == "" {
		loginURL = "/auth/login"
	}
	target := loginURL + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, target)
	c.Abort()
	return nil, false
}

// pageNumber reads the requested page from the query string.
func pageNumber(c *gin.Context) int {
	return pagination.ParseNumber(c.Query("page"))
}

func perPage() int {
	if n := config.GlobalConfig.App.PerPage; n > 0 {
		return n
	}
	return 10
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}
