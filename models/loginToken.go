package models

import (
	"gorm.io/gorm"
	"time"
)

type LoginToken struct {
	gorm.Model
	Token          string `gorm:"type:text"`
	ExpirationTime time.Time
	UserID         string `gorm:"index;size:36"`
	Role           string
}
