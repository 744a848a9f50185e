package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type PaymentMethod string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by seller
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the items
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled, record is kept

	// Payment methods
	PaymentMethodCOD    PaymentMethod = "cod" // Cash on delivery
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodPaypal PaymentMethod = "paypal"

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

var (
	ErrOrderNoItems        = errors.New("order must contain at least one item")
	ErrOrderItemInvalid    = errors.New("order item requires product id, name and price")
	ErrOrderAmountMissing  = errors.New("order amount is required")
	ErrOrderAddressInvalid = errors.New("order address requires first name, street, city and phone")
)

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderRef      string        `gorm:"uniqueIndex" json:"orderRef"`
	UserID        *string       `gorm:"index" json:"userId,omitempty"`
	GuestID       string        `gorm:"index" json:"guestId,omitempty"`
	IsGuest       bool          `json:"isGuest"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Address       OrderAddress  `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Status        OrderStatus   `gorm:"type:varchar(20)" json:"status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20)" json:"paymentMethod"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20)" json:"paymentStatus"`
	Date          time.Time     `json:"date"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// OrderItem is a frozen copy of the product at checkout time. Name, price
// and image are snapshots, never live joins against the product table.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Name      string  `gorm:"not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type OrderAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Zipcode   string `json:"zipcode,omitempty"`
	Country   string `json:"country,omitempty"`
	Phone     string `json:"phone"`
}

// BeforeCreate applies defaults and rejects structurally invalid orders at
// the storage boundary. Date is set once here and never touched again;
// UpdatedAt is refreshed by GORM on every save.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentMethodCOD
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentStatusPending
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	for i := range o.Items {
		if o.Items[i].Quantity <= 0 {
			o.Items[i].Quantity = 1
		}
	}
	return o.Validate()
}

// Validate enforces the required-field rules of the order document. It does
// not cross-check Amount against the item sum on arbitrary saves; checkout
// computes the amount itself, and later writes only touch status fields.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrOrderNoItems
	}
	for _, item := range o.Items {
		if item.ProductID == 0 || item.Name == "" || item.Price <= 0 {
			return ErrOrderItemInvalid
		}
	}
	if o.Amount <= 0 {
		return ErrOrderAmountMissing
	}
	a := o.Address
	if a.FirstName == "" || a.Street == "" || a.City == "" || a.Phone == "" {
		return ErrOrderAddressInvalid
	}
	return nil
}
