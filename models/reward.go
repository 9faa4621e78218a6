package models

import "time"

const (
	RewardTransactionEarn   = "earn"
	RewardTransactionRedeem = "redeem"
)

// Reward is an entry in the catalog customers redeem points against.
type Reward struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	PointsCost  int       `gorm:"not null" json:"pointsCost"`
	Image       string    `gorm:"type:text" json:"image,omitempty"`
	IsActive    bool      `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UserRewards struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"uniqueIndex;size:64;not null" json:"userId"`
	Points         int       `gorm:"not null;default:0" json:"points"`
	LifetimeEarned int       `gorm:"not null;default:0" json:"lifetimeEarned"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// RewardTransaction rows are only ever inserted.
type RewardTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index;size:64;not null" json:"userId"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Points      int       `gorm:"not null" json:"points"`
	OrderNumber string    `gorm:"size:40" json:"orderNumber,omitempty"`
	RewardID    *uint     `json:"rewardId,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
