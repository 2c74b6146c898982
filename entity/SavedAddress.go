package entity

import (
	"gorm.io/gorm"
)

// SavedAddress is one row in a user's address book. At most one row per user
// carries IsDefault; the service layer keeps that invariant, not the store.
type SavedAddress struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`

	Name            string `json:"name"` // label, e.g. "Home", "Work"
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	DeliveryAddress string `json:"deliveryAddress"`
	City            string `json:"city"`
	State           string `json:"state"`
	PostalCode      string `json:"postalCode"`
	IsDefault       bool   `json:"isDefault"`

	User User `json:"-"`
}
