package middleware

import (
	"log/slog"
	"strings"

	"eathub/jwt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware attaches the caller's identity when the bearer token verifies.
// Requests without a valid token continue anonymously.
func AuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		if token == "" {
			c.Next()
			return
		}

		userID, role, err := jwt.VerifyToken(secret, token, db)
		if err != nil {
			slog.Debug("auth.token_rejected", "path", c.Request.URL.Path, "error", err)
			c.Next()
			return
		}

		c.Set("Token", token)
		c.Set("UserID", userID)
		c.Set("Role", role)
		c.Next()
	}
}
