package repository

import (
	"strings"

	"github.com/karanxgill/AllHoursCafe/entity"
	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	err := r.DB.Where("LOWER(email) = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).Count(&count).Error
	return count, err
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

// BackfillContact copies contact fields from a placed order onto the user's
// profile, but only into fields that are currently blank. Existing profile
// data always wins.
func (r *UserRepository) BackfillContact(userID uint, o *entity.Order) error {
	var u entity.User
	if err := r.DB.First(&u, userID).Error; err != nil {
		return err
	}

	updates := map[string]any{}
	if u.PhoneNumber == "" && o.CustomerPhone != "" {
		updates["phone_number"] = o.CustomerPhone
	}
	if u.Address == "" && o.DeliveryAddress != "" {
		updates["address"] = o.DeliveryAddress
	}
	if u.City == "" && o.City != "" {
		updates["city"] = o.City
	}
	if u.State == "" && o.State != "" {
		updates["state"] = o.State
	}
	if u.PostalCode == "" && o.PostalCode != "" {
		updates["postal_code"] = o.PostalCode
	}
	if len(updates) == 0 {
		return nil
	}
	return r.DB.Model(&u).Updates(updates).Error
}
