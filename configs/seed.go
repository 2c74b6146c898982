package configs

import (
	"log"

	"github.com/karanxgill/AllHoursCafe/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first admin account from env, once.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		FullName: "Admin",
		Role:     "admin",
	}
	return db.Create(&admin).Error
}

// SeedMenu loads a starter catalog so the cart has something to validate
// against on a fresh database.
func SeedMenu() error {
	db := DB()

	var count int64
	db.Model(&entity.Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	categories := []struct {
		name  string
		items []entity.MenuItem
	}{
		{"Breakfast", []entity.MenuItem{
			{Name: "Masala Omelette", Description: "Three-egg omelette with onion, chilli and coriander", Price: decimal.RequireFromString("120.00"), IsActive: true},
			{Name: "Pancake Stack", Description: "Buttermilk pancakes with honey", Price: decimal.RequireFromString("180.00"), IsActive: true},
		}},
		{"Mains", []entity.MenuItem{
			{Name: "Paneer Tikka Bowl", Description: "Grilled paneer over jeera rice", Price: decimal.RequireFromString("240.00"), IsActive: true},
			{Name: "Club Sandwich", Description: "Triple-decker with fries", Price: decimal.RequireFromString("210.00"), IsActive: true},
		}},
		{"Beverages", []entity.MenuItem{
			{Name: "Cold Coffee", Description: "Blended with vanilla ice cream", Price: decimal.RequireFromString("140.00"), IsActive: true},
			{Name: "Masala Chai", Description: "House spice blend", Price: decimal.RequireFromString("60.00"), IsActive: true},
		}},
	}

	for _, c := range categories {
		cat := entity.Category{Name: c.name, IsActive: true}
		if err := db.Create(&cat).Error; err != nil {
			return err
		}
		for i := range c.items {
			c.items[i].CategoryID = cat.ID
		}
		if err := db.Create(&c.items).Error; err != nil {
			return err
		}
	}
	log.Println("seeded starter menu")
	return nil
}
