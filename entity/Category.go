package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	ImageUrl    string `json:"imageUrl"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"-"`
}
