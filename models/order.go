package models

import "time"

const (
	OrderStatusReceived       = "received"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
)

// OrderStatuses lists the status progression in order.
var OrderStatuses = []string{
	OrderStatusReceived,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

type Order struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	OrderNumber       string      `gorm:"index;size:40;not null" json:"orderNumber"`
	UserID            string      `gorm:"index;size:64" json:"userId,omitempty"`
	CustomerName      string      `gorm:"not null" json:"customerName"`
	CustomerPhone     string      `gorm:"not null" json:"customerPhone"`
	CustomerEmail     string      `json:"customerEmail,omitempty"`
	DeliveryAddress   string      `gorm:"not null" json:"deliveryAddress"`
	Notes             string      `json:"notes,omitempty"`
	Subtotal          float64     `gorm:"not null" json:"subtotal"`
	DiscountAmount    float64     `gorm:"not null;default:0" json:"discountAmount"`
	VoucherCode       string      `gorm:"size:64" json:"voucherCode,omitempty"`
	TotalAmount       float64     `gorm:"not null" json:"totalAmount"`
	Status            string      `gorm:"size:32;not null" json:"status"`
	EstimatedDelivery time.Time   `json:"estimatedDelivery"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
	Items             []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}
