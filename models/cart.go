package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cartId"`
	UserID    string     `gorm:"uniqueIndex" json:"userId"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem carries the same product snapshot an order line item does, so
// re-adding an order to the cart needs no product lookup.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    uint      `gorm:"index" json:"-"`
	ProductID uint      `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}
