package middleware

import (
	"strings"

	"pulse/internal/repository"
	"pulse/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthCookie is the cookie browsers carry the token in; API clients
// use an Authorization bearer header instead.
const AuthCookie = "auth_token"

// CurrentUser resolves the requesting user from the token, when one is
// present, and stores it in the context. It never rejects: handlers
// guard protected actions themselves and redirect to the login URL so
// the browser flow of the original application is preserved.
func CurrentUser(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil || user == nil {
			c.Next()
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
