package models

import "time"

type Feedback struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Rating      int       `gorm:"not null" json:"rating"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	OrderNumber string    `gorm:"size:40" json:"orderNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
