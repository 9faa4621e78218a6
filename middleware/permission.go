package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"eathub/models"
	"eathub/respond"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CheckAdminPermissionMiddleware requires an admin role claim and a matching admin row,
// which it stores in the context as "Admin".
func CheckAdminPermissionMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("Role")
		userID, exists := c.Get("UserID")
		if !exists {
			respond.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		if role != models.RoleAdmin {
			respond.Abort(c, http.StatusForbidden, "FORBIDDEN", "admin access required")
			return
		}

		var admin models.User
		err := db.WithContext(c).
			Where("id = ? AND role = ?", userID, models.RoleAdmin).
			First(&admin).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respond.Abort(c, http.StatusForbidden, "FORBIDDEN", "admin account not found")
				return
			}
			slog.Error("auth.admin_lookup_failed", "user_id", userID, "error", err)
			respond.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load admin account")
			return
		}

		c.Set("Admin", &admin)
		c.Next()
	}
}
