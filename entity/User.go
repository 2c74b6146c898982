package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Role        string `gorm:"not null;default:customer" json:"role"`

	// Relations — preload only when needed
	SavedAddresses []SavedAddress `gorm:"foreignKey:UserID" json:"-"`
}
