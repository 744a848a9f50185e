package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description,omitempty"`
	Brand       string         `json:"brand,omitempty"`
	Category    string         `gorm:"index" json:"category,omitempty"`
	Price       float64        `gorm:"not null" json:"price"`
	Image       string         `json:"image,omitempty"`
	Stock       int            `json:"stock"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
