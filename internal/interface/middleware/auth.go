package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/helpers"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the Authorization bearer token and injects the user ID into
// the Gin context. Tokens are stateless; there is no server-side session.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
