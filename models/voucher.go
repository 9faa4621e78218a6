package models

import "time"

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Voucher struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Code           string     `gorm:"uniqueIndex;size:64;not null" json:"code"`
	Description    string     `json:"description"`
	DiscountType   string     `gorm:"size:16;not null" json:"discountType"`
	DiscountValue  float64    `gorm:"not null" json:"discountValue"`
	MinOrderAmount float64    `gorm:"not null;default:0" json:"minOrderAmount"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	UsageLimit     *int       `json:"usageLimit"`
	UsedCount      int        `gorm:"not null;default:0" json:"usedCount"`
	IsActive       bool       `gorm:"not null" json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Expired reports whether the voucher's expiry is before now.
func (v *Voucher) Expired(now time.Time) bool {
	return v.ExpiresAt != nil && now.After(*v.ExpiresAt)
}

// Exhausted reports whether the usage limit has been reached.
func (v *Voucher) Exhausted() bool {
	return v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit
}
