package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eathub/models"
	"eathub/respond"
	"eathub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type rewardRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	PointsCost  int    `json:"pointsCost" binding:"required,gt=0"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"isActive"`
}

type rewardUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PointsCost  *int    `json:"pointsCost"`
	Image       *string `json:"image"`
	IsActive    *bool   `json:"isActive"`
}

func GetRewardCatalogHandler(c *gin.Context, db *gorm.DB) {
	query := db.WithContext(c).Order("points_cost, id")
	if !isVerifiedAdmin(c) {
		query = query.Where("is_active = ?", true)
	}
	var rewards []models.Reward
	if err := query.Find(&rewards).Error; err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, rewards)
}

// GetUserRewardsHandler reports a zero balance instead of failing when the lookup errors.
func GetUserRewardsHandler(c *gin.Context, db *gorm.DB) {
	userID := actingUserID(c)
	if userID == "" {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "user id is required")
		return
	}

	balance, err := services.GetUserRewards(c, db, userID)
	if err != nil {
		slog.Warn("rewards.balance_failed", "user_id", userID, "error", err)
		balance = &models.UserRewards{UserID: userID}
	}
	respond.OK(c, http.StatusOK, balance)
}

func GetRewardTransactionsHandler(c *gin.Context, db *gorm.DB) {
	userID := actingUserID(c)
	if userID == "" {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "user id is required")
		return
	}
	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		return
	}

	txs, err := services.ListTransactions(c, db, userID, limit)
	if err != nil {
		slog.Warn("rewards.transactions_failed", "user_id", userID, "error", err)
		txs = []models.RewardTransaction{}
	}
	respond.OK(c, http.StatusOK, txs)
}

func RedeemRewardHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		RewardID uint `json:"rewardId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	balance, tx, err := services.RedeemReward(c, db, actingUserID(c), req.RewardID)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{
		"rewards":     balance,
		"transaction": tx,
	})
}

func CreateRewardHandler(c *gin.Context, db *gorm.DB) {
	var req rewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	reward := models.Reward{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PointsCost:  req.PointsCost,
		Image:       req.Image,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := db.WithContext(c).Create(&reward).Error; err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusCreated, reward)
}

func UpdateRewardHandler(c *gin.Context, db *gorm.DB) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req rewardUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var reward models.Reward
	if err := db.WithContext(c).First(&reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "reward not found")
			return
		}
		respond.Err(c, err)
		return
	}

	if req.Name != nil {
		reward.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		reward.Description = *req.Description
	}
	if req.PointsCost != nil {
		reward.PointsCost = *req.PointsCost
	}
	if req.Image != nil {
		reward.Image = *req.Image
	}
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}
	if reward.Name == "" || reward.PointsCost <= 0 {
		respond.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "name and a positive points cost are required")
		return
	}

	if err := db.WithContext(c).Save(&reward).Error; err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, reward)
}

func DeleteRewardHandler(c *gin.Context, db *gorm.DB) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result := db.WithContext(c).Delete(&models.Reward{}, id)
	if result.Error != nil {
		respond.Err(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "reward not found")
		return
	}
	respond.OK(c, http.StatusOK, gin.H{"id": id})
}
