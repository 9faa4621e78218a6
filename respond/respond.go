// Package respond writes the API envelope shared by every endpoint.
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"eathub/services"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func Fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"message": message,
			"code":    code,
		},
	})
}

// Abort is Fail for middleware.
func Abort(c *gin.Context, status int, code, message string) {
	Fail(c, status, code, message)
	c.Abort()
}

// Err maps a service error to its status and code; anything else is a 500.
func Err(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		if svcErr.Status >= http.StatusInternalServerError {
			slog.Error("request.failed", "path", c.FullPath(), "code", svcErr.Code, "error", err)
		}
		Fail(c, svcErr.Status, svcErr.Code, svcErr.Message)
		return
	}
	slog.Error("request.failed", "path", c.FullPath(), "error", err)
	Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// BadRequest reports a body that could not be bound.
func BadRequest(c *gin.Context, err error) {
	Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}
