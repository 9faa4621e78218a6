package middleware

import (
	"net/http"

	"eathub/respond"

	"github.com/gin-gonic/gin"
)

// CheckLoginMiddleware stops requests that carry no verified token.
func CheckLoginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("UserID"); !exists {
			respond.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		c.Next()
	}
}
