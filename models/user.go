package models

import "time"

type User struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Password  string  `gorm:"not null" json:"-"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone,omitempty"`
	IsActive  bool    `json:"isActive"`
	Address   Address `gorm:"embedded" json:"address"`
	Cart      Cart    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders    []Order `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Address model embedded in User
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zipcode string `json:"zipcode,omitempty"`
	Country string `json:"country,omitempty"`
}
