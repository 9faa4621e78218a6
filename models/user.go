package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Email       string       `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string       `gorm:"not null" json:"-"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Role        string       `gorm:"size:16;not null" json:"role"`
	LoginTokens []LoginToken `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
