package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderTypeDelivery = "Delivery"
	OrderTypePickup   = "Pickup"

	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"

	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
)

// Order is the persisted snapshot of one checkout attempt. Item prices and the
// delivery address are copied in at order time and never re-read from the
// catalog or the address book afterwards.
type Order struct {
	gorm.Model
	CustomerName        string `json:"customerName"`
	CustomerEmail       string `gorm:"index" json:"customerEmail"`
	CustomerPhone       string `json:"customerPhone"`
	DeliveryAddress     string `json:"deliveryAddress"`
	City                string `json:"city"`
	State               string `json:"state"`
	PostalCode          string `json:"postalCode"`
	SpecialInstructions string `json:"specialInstructions"`

	OrderType    string     `json:"orderType"` // Delivery or Pickup
	DeliveryTime *time.Time `json:"deliveryTime"`

	SubTotal    decimal.Decimal `gorm:"type:decimal(10,2)" json:"subTotal"`
	Tax         decimal.Decimal `gorm:"type:decimal(10,2)" json:"tax"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(10,2)" json:"deliveryFee"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`

	PaymentMethod  string    `gorm:"default:Pending" json:"paymentMethod"`
	PaymentStatus  string    `gorm:"default:Pending" json:"paymentStatus"`
	OrderStatus    string    `gorm:"default:Pending" json:"orderStatus"`
	PaymentDetails string    `gorm:"default:None" json:"paymentDetails"`
	OrderDate      time.Time `json:"orderDate"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
