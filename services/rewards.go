package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"eathub/models"

	"gorm.io/gorm"
)

// GetUserRewards returns the balance row for userID, creating an empty one on first use.
func GetUserRewards(ctx context.Context, db *gorm.DB, userID string) (*models.UserRewards, error) {
	if userID == "" {
		return nil, Validation("user id is required")
	}
	var balance models.UserRewards
	err := db.WithContext(ctx).
		Where(models.UserRewards{UserID: userID}).
		FirstOrCreate(&balance).Error
	if err != nil {
		return nil, Internal("failed to load rewards", err)
	}
	return &balance, nil
}

// AwardPoints credits floor(total/10) points for an order and records the earn.
func AwardPoints(ctx context.Context, db *gorm.DB, userID, orderNumber string, total float64) (int, error) {
	points := PointsFor(total)
	if userID == "" || points == 0 {
		return 0, nil
	}

	balance, err := GetUserRewards(ctx, db, userID)
	if err != nil {
		return 0, err
	}
	balance.Points += points
	balance.LifetimeEarned += points
	err = db.WithContext(ctx).Model(balance).Updates(map[string]any{
		"points":          balance.Points,
		"lifetime_earned": balance.LifetimeEarned,
	}).Error
	if err != nil {
		return 0, Internal("failed to update rewards", err)
	}

	err = db.WithContext(ctx).Create(&models.RewardTransaction{
		UserID:      userID,
		Type:        models.RewardTransactionEarn,
		Points:      points,
		OrderNumber: orderNumber,
		Description: fmt.Sprintf("Earned from order %s", orderNumber),
	}).Error
	if err != nil {
		return points, Internal("failed to record reward transaction", err)
	}
	return points, nil
}

// RedeemReward spends points on a catalog reward.
func RedeemReward(ctx context.Context, db *gorm.DB, userID string, rewardID uint) (*models.UserRewards, *models.RewardTransaction, error) {
	if userID == "" {
		return nil, nil, Validation("user id is required")
	}

	var reward models.Reward
	err := db.WithContext(ctx).Where("id = ? AND is_active = ?", rewardID, true).First(&reward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, NotFound("reward not found")
		}
		return nil, nil, Internal("failed to load reward", err)
	}

	balance, err := GetUserRewards(ctx, db, userID)
	if err != nil {
		return nil, nil, err
	}
	if balance.Points < reward.PointsCost {
		return balance, nil, newError(http.StatusBadRequest, "INSUFFICIENT_POINTS",
			fmt.Sprintf("reward costs %d points, balance is %d", reward.PointsCost, balance.Points))
	}

	balance.Points -= reward.PointsCost
	if err := db.WithContext(ctx).Model(balance).Update("points", balance.Points).Error; err != nil {
		return nil, nil, Internal("failed to update rewards", err)
	}

	tx := &models.RewardTransaction{
		UserID:      userID,
		Type:        models.RewardTransactionRedeem,
		Points:      -reward.PointsCost,
		RewardID:    &reward.ID,
		Description: fmt.Sprintf("Redeemed %s", reward.Name),
	}
	if err := db.WithContext(ctx).Create(tx).Error; err != nil {
		return balance, nil, Internal("failed to record reward transaction", err)
	}
	return balance, tx, nil
}

func ListTransactions(ctx context.Context, db *gorm.DB, userID string, limit int) ([]models.RewardTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var txs []models.RewardTransaction
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, Internal("failed to list reward transactions", err)
	}
	return txs, nil
}
