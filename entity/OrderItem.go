package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is an immutable snapshot of a catalog item at order time.
type OrderItem struct {
	gorm.Model
	OrderID    uint `gorm:"index" json:"orderId"`
	MenuItemID uint `json:"menuItemId"`

	Name     string          `json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"` // Price * Quantity
}
