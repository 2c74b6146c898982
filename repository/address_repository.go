package repository

import (
	"github.com/karanxgill/AllHoursCafe/entity"
	"gorm.io/gorm"
)

type AddressRepository struct{ DB *gorm.DB }

func NewAddressRepository(db *gorm.DB) *AddressRepository { return &AddressRepository{DB: db} }

// ListByUser returns the user's addresses, default first, then most recently
// touched.
func (r *AddressRepository) ListByUser(userID uint) ([]entity.SavedAddress, error) {
	var rows []entity.SavedAddress
	err := r.DB.Where("user_id = ?", userID).
		Order("is_default DESC, updated_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListAll is only used by the fuzzy recovery scan.
func (r *AddressRepository) ListAll() ([]entity.SavedAddress, error) {
	var rows []entity.SavedAddress
	err := r.DB.Find(&rows).Error
	return rows, err
}

func (r *AddressRepository) GetForUser(id, userID uint) (*entity.SavedAddress, error) {
	var a entity.SavedAddress
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepository) Create(tx *gorm.DB, a *entity.SavedAddress) error {
	return tx.Create(a).Error
}

func (r *AddressRepository) Save(tx *gorm.DB, a *entity.SavedAddress) error {
	return tx.Save(a).Error
}

func (r *AddressRepository) Delete(tx *gorm.DB, id, userID uint) error {
	return tx.Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.SavedAddress{}).Error
}

func (r *AddressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.SavedAddress{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ClearDefaults unsets IsDefault on every address of the user except the one
// given (0 = no exception).
func (r *AddressRepository) ClearDefaults(tx *gorm.DB, userID, exceptID uint) error {
	q := tx.Model(&entity.SavedAddress{}).Where("user_id = ? AND is_default = ?", userID, true)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Update("is_default", false).Error
}

// FindMatching looks for an existing address with the same street line, city
// and postal code, used to keep the from-order side-save idempotent.
func (r *AddressRepository) FindMatching(userID uint, line, city, postal string) (*entity.SavedAddress, error) {
	var a entity.SavedAddress
	err := r.DB.Where(
		"user_id = ? AND delivery_address = ? AND city = ? AND postal_code = ?",
		userID, line, city, postal,
	).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AdoptOwnership rewrites user_id on the given rows. One-way repair of
// orphaned data; callers must log what they adopt.
func (r *AddressRepository) AdoptOwnership(tx *gorm.DB, ids []uint, userID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Model(&entity.SavedAddress{}).
		Where("id IN ?", ids).
		Update("user_id", userID).Error
}
