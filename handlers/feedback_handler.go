package handlers

import (
	"net/http"
	"strings"

	"eathub/models"
	"eathub/respond"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateFeedbackHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Name        string `json:"name" binding:"max=100"`
		Email       string `json:"email" binding:"omitempty,email"`
		Rating      int    `json:"rating" binding:"required,min=1,max=5"`
		Message     string `json:"message" binding:"required,max=2000"`
		OrderNumber string `json:"orderNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "message is required")
		return
	}

	feedback := models.Feedback{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Rating:      req.Rating,
		Message:     message,
		OrderNumber: strings.TrimSpace(req.OrderNumber),
	}
	if err := db.WithContext(c).Create(&feedback).Error; err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusCreated, feedback)
}
