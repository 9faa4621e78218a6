package models

import "time"

type MenuItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	DiscountPrice *float64  `json:"discountPrice"`
	Category      string    `gorm:"index;not null" json:"category"`
	Ingredients   []string  `gorm:"serializer:json" json:"ingredients"`
	Available     bool      `gorm:"not null" json:"available"`
	Image         string    `gorm:"type:text" json:"image,omitempty"`
	Featured      bool      `gorm:"not null" json:"featured"`
	FeaturedOrder int       `gorm:"not null;default:0" json:"featuredOrder"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Category holds display metadata only; menu items point at it by name.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	SortOrder int       `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
