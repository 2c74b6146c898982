package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	ImageUrl    string          `json:"imageUrl"`
	IsActive    bool            `gorm:"default:true" json:"isActive"`

	CategoryID uint     `gorm:"index" json:"categoryId"`
	Category   Category `json:"-"`
}
