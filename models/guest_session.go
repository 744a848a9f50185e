package models

import "time"

// GuestSession backs short-lived guest checkouts. Orders placed with a
// guest token reference the session through Order.GuestID.
type GuestSession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
