package models

// OrderItem is a copy of the menu item as it was when the order was placed.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"index;not null" json:"orderId"`
	MenuItemID uint    `gorm:"not null" json:"menuItemId"`
	Name       string  `gorm:"not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	LineTotal  float64 `gorm:"not null" json:"lineTotal"`
}
